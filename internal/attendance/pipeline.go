package attendance

import (
	"context"
	"errors"
	"sync"
	"time"

	"aad/internal/models"
	"aad/internal/providers"
	"aad/internal/structures"
	"aad/internal/upstream"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"
)

type Query struct {
	PlaceID string
	From    int64
	To      int64
	Devices string
}

// Pipeline covers a query range with bounded segments, fetches each one,
// retries failures after the main pass and folds everything into per-person
// day summaries. One Pipeline serves one query; overlapping queries do not
// share state.
type Pipeline struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	fetcher upstream.CheckinAPI
	tokens  upstream.TokenSource
	clock   quartz.Clock
}

func NewPipeline(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, fetcher upstream.CheckinAPI, tokens upstream.TokenSource, clock quartz.Clock) *Pipeline {
	return &Pipeline{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		fetcher: fetcher,
		tokens:  tokens,
		clock:   clock,
	}
}

// Run executes the full fetch-retry-aggregate sequence. A missing token is
// fatal before any segment is attempted; individual segment failures are
// queued for the retry phase and never abort the run. On cancellation the
// partial report built so far is returned along with the context error.
func (p *Pipeline) Run(ctx context.Context, q Query) (*models.Report, error) {
	began := time.Now()

	segments, err := SplitRange(q.From, q.To, p.conf.Upstream.SegmentWidth)
	if err != nil {
		return nil, err
	}

	if _, err = p.tokens.Token(ctx); err != nil {
		return nil, err
	}

	p.logger.Infof(providers.TypeFetch, "Aggregating place %s over %d segments", q.PlaceID, len(segments))

	agg := NewAggregator(NewTimeFormatter(p.conf))
	retrier := NewRetryCoordinator(p.conf, p.logger, p.metrics, p.fetcher, p.clock)

	var queueMu sync.Mutex
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.conf.Upstream.Concurrency)

	for _, seg := range segments {
		eg.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			records, err := p.fetcher.FetchSegment(gctx, upstream.SegmentQuery{
				PlaceID: q.PlaceID,
				Segment: seg,
				Devices: q.Devices,
			})
			if err != nil {
				var authErr *upstream.AuthError
				if errors.As(err, &authErr) {
					return err
				}
				p.logger.Warnf(providers.TypeFetch, "Segment [%d,%d) failed: %s", seg.Start, seg.End, err)
				p.metrics.IncSegmentsFailed()
				queueMu.Lock()
				retrier.Enqueue(seg)
				queueMu.Unlock()
				return nil
			}

			p.metrics.IncSegmentsFetched()
			agg.Ingest(records)

			// Upstream rate limit: pause before the next segment's request.
			return waitClock(gctx, p.clock, p.conf.Upstream.RequestDelay)
		})
	}

	if err = eg.Wait(); err != nil {
		report := &models.Report{
			Days:   SortSummaries(agg.Finalize()),
			Failed: retrier.Pending(),
		}
		return report, err
	}

	failed := retrier.Drain(ctx, q.PlaceID, q.Devices, agg)

	report := &models.Report{
		Days:   SortSummaries(agg.Finalize()),
		Failed: failed,
	}
	p.metrics.ObservePipelineDuration(time.Since(began))
	p.logger.Infof(providers.TypeFetch, "Aggregation done: %d person-days, %d segments unrecoverable", len(report.Days), len(report.Failed))

	return report, ctx.Err()
}
