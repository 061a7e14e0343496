package attendance

import (
	"fmt"
	"time"

	"aad/internal/models"
)

// SplitRange covers the half-open range [from, to) in epoch milliseconds
// with contiguous segments of at most width. Only the final segment may be
// shorter. Produces at least one segment whenever from < to.
func SplitRange(from, to int64, width time.Duration) ([]models.Segment, error) {
	if from >= to {
		return nil, fmt.Errorf("invalid range: from %d must be before to %d", from, to)
	}

	step := width.Milliseconds()
	segments := make([]models.Segment, 0, (to-from)/step+1)
	for start := from; start < to; start += step {
		segments = append(segments, models.Segment{
			Start: start,
			End:   min(start+step, to),
		})
	}
	return segments, nil
}
