package attendance

import (
	"time"

	"aad/internal/structures"
)

// TimeFormatter renders an epoch-millisecond timestamp for display.
type TimeFormatter func(ms int64) string

// NewTimeFormatter binds the display format to the configured named fixed
// zone. The rendered string is presentation-only.
func NewTimeFormatter(conf *structures.Config) TimeFormatter {
	loc := time.FixedZone(conf.Display.ZoneName, int(conf.Display.UTCOffset.Seconds()))
	return func(ms int64) string {
		return time.UnixMilli(ms).In(loc).Format("15:04:05 02/01/2006")
	}
}
