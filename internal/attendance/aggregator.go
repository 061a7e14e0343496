package attendance

import (
	"fmt"
	"sort"
	"sync"

	"aad/internal/models"
)

type personDay struct {
	date       string
	personID   string
	personName string
	aliasID    string
	placeID    string
	title      string
	entries    []models.TimeEntry
}

// Aggregator folds raw check-in records into one bucket per (date, person).
// Writes are mutex-guarded so segment results may arrive from parallel
// fetches in any order; the fold is commutative because person metadata is
// frozen from the first record seen for a key and entries are sorted at
// finalization, not at insertion.
type Aggregator struct {
	mu     sync.Mutex
	days   map[string]*personDay
	format TimeFormatter
}

func NewAggregator(format TimeFormatter) *Aggregator {
	return &Aggregator{
		days:   make(map[string]*personDay),
		format: format,
	}
}

func (a *Aggregator) Ingest(records []models.CheckinRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range records {
		rec := &records[i]
		if rec.PersonID == "" {
			continue
		}

		key := rec.Day() + "_" + rec.PersonID
		day, ok := a.days[key]
		if !ok {
			day = &personDay{
				date:       rec.Day(),
				personID:   rec.PersonID,
				personName: rec.PersonName,
				aliasID:    rec.AliasID,
				placeID:    rec.PlaceID,
				title:      rec.NormalizedTitle(),
			}
			a.days[key] = day
		}
		day.entries = append(day.entries, models.TimeEntry{
			Timestamp: rec.CheckinTime,
			Formatted: a.format(rec.CheckinTime),
		})
	}
}

// Len reports the number of person-day buckets accumulated so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.days)
}

// Finalize orders each bucket's entries by timestamp and derives the
// summary fields. Check-in is the earliest entry, check-out the latest;
// they coincide when a person produced a single event.
func (a *Aggregator) Finalize() []models.DaySummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	summaries := make([]models.DaySummary, 0, len(a.days))
	for _, day := range a.days {
		sort.Slice(day.entries, func(i, j int) bool {
			return day.entries[i].Timestamp < day.entries[j].Timestamp
		})

		first := day.entries[0].Timestamp
		last := day.entries[len(day.entries)-1].Timestamp

		summaries = append(summaries, models.DaySummary{
			Date:         day.date,
			PersonID:     day.personID,
			PersonName:   day.personName,
			AliasID:      day.aliasID,
			PlaceID:      day.placeID,
			Title:        day.title,
			CheckinTime:  first,
			CheckoutTime: last,
			WorkingTime:  workingTime(first, last),
			TotalRecords: len(day.entries),
			Entries:      day.entries,
		})
	}
	return summaries
}

func workingTime(checkin, checkout int64) string {
	if checkin == checkout {
		return "0h 0m"
	}
	minutes := (checkout - checkin) / 60000
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
