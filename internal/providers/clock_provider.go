package providers

import "github.com/coder/quartz"

// NewClockProvider supplies the real clock. Tests substitute quartz.NewMock
// so token expiry and inter-request pacing never need wall-clock sleeps.
func NewClockProvider() quartz.Clock {
	return quartz.NewReal()
}
