package services

import (
	"context"

	"aad/internal/attendance"
	"aad/internal/models"
	"aad/internal/providers"
	"aad/internal/structures"
	"aad/internal/upstream"

	"github.com/coder/quartz"
	"go.uber.org/atomic"
)

type AttendanceServiceInterface interface {
	AggregateCheckins(ctx context.Context, q attendance.Query) (*models.Report, error)
	RunsTotal() int64
	EventsTotal() int64
}

// AttendanceService is the pipeline entry point for the HTTP layer. Each
// call builds a fresh pipeline over the shared fetcher and token cache, so
// overlapping queries share credentials but never aggregation state.
type AttendanceService struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	fetcher upstream.CheckinAPI
	tokens  upstream.TokenSource
	clock   quartz.Clock

	runs   atomic.Int64
	events atomic.Int64
}

func NewAttendanceService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, fetcher upstream.CheckinAPI, tokens upstream.TokenSource, clock quartz.Clock) AttendanceServiceInterface {
	return &AttendanceService{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		fetcher: fetcher,
		tokens:  tokens,
		clock:   clock,
	}
}

func (as *AttendanceService) AggregateCheckins(ctx context.Context, q attendance.Query) (*models.Report, error) {
	pipeline := attendance.NewPipeline(as.conf, as.logger, as.metrics, as.fetcher, as.tokens, as.clock)

	report, err := pipeline.Run(ctx, q)
	if report != nil {
		as.runs.Inc()
		for _, day := range report.Days {
			as.events.Add(int64(day.TotalRecords))
		}
	}
	return report, err
}

func (as *AttendanceService) RunsTotal() int64 {
	return as.runs.Load()
}

func (as *AttendanceService) EventsTotal() int64 {
	return as.events.Load()
}
