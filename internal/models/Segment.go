package models

import "time"

// Segment is one bounded half-open time window [Start, End) in epoch
// milliseconds, small enough for a single upstream query.
type Segment struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func (s Segment) Width() time.Duration {
	return time.Duration(s.End-s.Start) * time.Millisecond
}

// FailedSegment is a segment whose fetch failed, together with the number
// of retry attempts already spent on it.
type FailedSegment struct {
	Segment
	Attempts int
}
