package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDay_UsesUpstreamDate(t *testing.T) {
	r := &CheckinRecord{Date: "2024-03-05", CheckinTime: 1709600000000}
	assert.Equal(t, "2024-03-05", r.Day())
}

func TestDay_FallsBackToUTCDateOfTimestamp(t *testing.T) {
	// 2024-01-15T23:30:00Z
	r := &CheckinRecord{CheckinTime: 1705361400000}
	assert.Equal(t, "2024-01-15", r.Day())
}

func TestNormalizedTitle_AbsentDefaultsToCustomer(t *testing.T) {
	r := &CheckinRecord{}
	assert.Equal(t, DefaultTitle, r.NormalizedTitle())
}

func TestNormalizedTitle_StringTrimmed(t *testing.T) {
	r := &CheckinRecord{Title: "  Engineer  "}
	assert.Equal(t, "Engineer", r.NormalizedTitle())
}

func TestNormalizedTitle_NonStringBecomesNA(t *testing.T) {
	r := &CheckinRecord{Title: float64(42)}
	assert.Equal(t, "N/A", r.NormalizedTitle())

	r = &CheckinRecord{Title: map[string]interface{}{"x": 1}}
	assert.Equal(t, "N/A", r.NormalizedTitle())
}

func TestSegmentWidth(t *testing.T) {
	s := Segment{Start: 0, End: 6 * 60 * 60 * 1000}
	assert.Equal(t, "6h0m0s", s.Width().String())
}
