package models

import (
	"strings"
	"time"
)

const DefaultTitle = "Customer"

// CheckinRecord is one raw check-in event as returned by the upstream API.
// Title is left untyped because the vendor sends strings, numbers or null
// depending on the device firmware.
type CheckinRecord struct {
	PersonID    string      `json:"personID"`
	PersonName  string      `json:"personName,omitempty"`
	AliasID     string      `json:"aliasID,omitempty"`
	PlaceID     string      `json:"placeID,omitempty"`
	Title       interface{} `json:"title,omitempty"`
	Date        string      `json:"date,omitempty"`
	CheckinTime int64       `json:"checkinTime"`
}

// Day returns the record's calendar date, falling back to the UTC date
// derived from the check-in timestamp when the upstream omits it.
func (r *CheckinRecord) Day() string {
	if r.Date != "" {
		return r.Date
	}
	return time.UnixMilli(r.CheckinTime).UTC().Format("2006-01-02")
}

// NormalizedTitle maps the untyped title field to the display value:
// absent becomes DefaultTitle, strings are trimmed, anything else is "N/A".
func (r *CheckinRecord) NormalizedTitle() string {
	if r.Title == nil {
		return DefaultTitle
	}
	if s, ok := r.Title.(string); ok {
		return strings.TrimSpace(s)
	}
	return "N/A"
}
