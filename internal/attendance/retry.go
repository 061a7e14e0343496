package attendance

import (
	"context"
	"time"

	"aad/internal/models"
	"aad/internal/providers"
	"aad/internal/structures"
	"aad/internal/upstream"

	"github.com/coder/quartz"
)

// RetryCoordinator re-attempts segments whose fetch failed during the main
// pass. The queue drains FIFO, each attempt preceded by the retry delay.
// Segments that fail MaxRetries attempts are reported back so the caller
// can flag the result as incomplete instead of losing them silently.
type RetryCoordinator struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	fetcher upstream.CheckinAPI
	clock   quartz.Clock

	queue []models.FailedSegment
}

func NewRetryCoordinator(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, fetcher upstream.CheckinAPI, clock quartz.Clock) *RetryCoordinator {
	return &RetryCoordinator{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		fetcher: fetcher,
		clock:   clock,
	}
}

func (rc *RetryCoordinator) Enqueue(seg models.Segment) {
	rc.queue = append(rc.queue, models.FailedSegment{Segment: seg})
}

// Pending returns the segments still queued, used when a cancelled run must
// report what it never managed to fetch.
func (rc *RetryCoordinator) Pending() []models.Segment {
	pending := make([]models.Segment, 0, len(rc.queue))
	for _, f := range rc.queue {
		pending = append(pending, f.Segment)
	}
	return pending
}

// Drain runs the queue to completion, feeding recovered events into agg.
// It returns the segments whose retries were exhausted; on context
// cancellation everything still queued counts as failed.
func (rc *RetryCoordinator) Drain(ctx context.Context, placeID, devices string, agg *Aggregator) []models.Segment {
	var exhausted []models.Segment

	for len(rc.queue) > 0 {
		if err := waitClock(ctx, rc.clock, rc.conf.Upstream.RetryDelay); err != nil {
			exhausted = append(exhausted, rc.Pending()...)
			rc.queue = nil
			return exhausted
		}

		entry := rc.queue[0]
		rc.queue = rc.queue[1:]

		rc.metrics.IncRetries()
		records, err := rc.fetcher.FetchSegment(ctx, upstream.SegmentQuery{
			PlaceID: placeID,
			Segment: entry.Segment,
			Devices: devices,
		})
		if err == nil {
			rc.logger.Infof(providers.TypeRetry, "Segment [%d,%d) recovered on attempt %d", entry.Start, entry.End, entry.Attempts+1)
			agg.Ingest(records)
			continue
		}

		entry.Attempts++
		if entry.Attempts < rc.conf.Upstream.MaxRetries {
			rc.logger.Warnf(providers.TypeRetry, "Segment [%d,%d) retry %d failed: %s", entry.Start, entry.End, entry.Attempts, err)
			rc.queue = append(rc.queue, entry)
			continue
		}

		rc.logger.Errorf(providers.TypeRetry, "Segment [%d,%d) dropped after %d attempts: %s", entry.Start, entry.End, entry.Attempts, err)
		rc.metrics.IncRetriesExhausted()
		exhausted = append(exhausted, entry.Segment)
	}

	return exhausted
}

func waitClock(ctx context.Context, clock quartz.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
