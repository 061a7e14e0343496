package models

// TimeEntry is one check-in occurrence inside a person-day aggregate.
// Formatted is presentation-only and never used for sorting or keys.
type TimeEntry struct {
	Timestamp int64  `json:"timestamp"`
	Formatted string `json:"formatted"`
}

// DaySummary is the folded attendance of one person on one calendar date.
type DaySummary struct {
	Date         string      `json:"date"`
	PersonID     string      `json:"personID"`
	PersonName   string      `json:"personName"`
	AliasID      string      `json:"aliasID"`
	PlaceID      string      `json:"placeID"`
	Title        string      `json:"title"`
	CheckinTime  int64       `json:"checkinTime"`
	CheckoutTime int64       `json:"checkoutTime"`
	WorkingTime  string      `json:"workingTime"`
	TotalRecords int         `json:"totalRecords"`
	Entries      []TimeEntry `json:"entries"`
}

// Report is the pipeline result: the sorted summaries plus the segments
// whose data is permanently missing because every retry failed. Callers
// decide whether a non-empty Failed list warrants a partial-result warning.
type Report struct {
	Days   []DaySummary `json:"days"`
	Failed []Segment    `json:"failedSegments"`
}
