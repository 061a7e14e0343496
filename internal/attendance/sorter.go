package attendance

import (
	"sort"

	"aad/internal/models"
)

// SortSummaries orders summaries by date ascending, then by check-in time
// ascending within the same date. ISO dates sort lexicographically as
// calendar order. The sort is stable with respect to equal keys.
func SortSummaries(summaries []models.DaySummary) []models.DaySummary {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Date != summaries[j].Date {
			return summaries[i].Date < summaries[j].Date
		}
		return summaries[i].CheckinTime < summaries[j].CheckinTime
	})
	return summaries
}
