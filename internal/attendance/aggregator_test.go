package attendance

import (
	"strconv"
	"testing"
	"time"

	"aad/internal/models"
	"aad/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFormat(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

func TestIngest_OneAggregatePerPersonDay(t *testing.T) {
	agg := NewAggregator(rawFormat)
	agg.Ingest([]models.CheckinRecord{
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 100},
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 200},
		{PersonID: "p1", Date: "2024-01-02", CheckinTime: 300},
		{PersonID: "p2", Date: "2024-01-01", CheckinTime: 400},
	})

	assert.Equal(t, 3, agg.Len())

	summaries := agg.Finalize()
	byKey := make(map[string]models.DaySummary)
	for _, s := range summaries {
		byKey[s.Date+"_"+s.PersonID] = s
	}
	assert.Equal(t, 2, byKey["2024-01-01_p1"].TotalRecords)
	assert.Equal(t, 1, byKey["2024-01-02_p1"].TotalRecords)
	assert.Equal(t, 1, byKey["2024-01-01_p2"].TotalRecords)
}

func TestIngest_MissingPersonIDIgnored(t *testing.T) {
	agg := NewAggregator(rawFormat)
	agg.Ingest([]models.CheckinRecord{
		{PersonID: "", Date: "2024-01-01", CheckinTime: 100},
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 200},
	})
	assert.Equal(t, 1, agg.Len())
}

func TestIngest_MetadataFrozenFromFirstEvent(t *testing.T) {
	agg := NewAggregator(rawFormat)
	agg.Ingest([]models.CheckinRecord{
		{PersonID: "p1", PersonName: "Alice", AliasID: "a1", PlaceID: "pl1", Title: "Engineer", Date: "2024-01-01", CheckinTime: 100},
		{PersonID: "p1", PersonName: "Bob", AliasID: "a2", PlaceID: "pl2", Title: "Manager", Date: "2024-01-01", CheckinTime: 200},
	})

	summaries := agg.Finalize()
	require.Len(t, summaries, 1)
	assert.Equal(t, "Alice", summaries[0].PersonName)
	assert.Equal(t, "a1", summaries[0].AliasID)
	assert.Equal(t, "pl1", summaries[0].PlaceID)
	assert.Equal(t, "Engineer", summaries[0].Title)
}

func TestIngest_DuplicateTimestampsBothKept(t *testing.T) {
	// Events are appended per key, never deduplicated by timestamp.
	agg := NewAggregator(rawFormat)
	agg.Ingest([]models.CheckinRecord{
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 100},
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 100},
	})

	summaries := agg.Finalize()
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].TotalRecords)
	assert.Equal(t, "0h 0m", summaries[0].WorkingTime)
}

func TestFinalize_EntriesSortedCheckinCheckout(t *testing.T) {
	agg := NewAggregator(rawFormat)
	agg.Ingest([]models.CheckinRecord{
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 900},
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 100},
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 500},
	})

	summaries := agg.Finalize()
	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, int64(100), s.CheckinTime)
	assert.Equal(t, int64(900), s.CheckoutTime)
	require.Len(t, s.Entries, 3)
	assert.Equal(t, int64(100), s.Entries[0].Timestamp)
	assert.Equal(t, int64(500), s.Entries[1].Timestamp)
	assert.Equal(t, int64(900), s.Entries[2].Timestamp)
}

func TestFinalize_SingleEventCheckinEqualsCheckout(t *testing.T) {
	agg := NewAggregator(rawFormat)
	agg.Ingest([]models.CheckinRecord{
		{PersonID: "p1", Date: "2024-01-01", CheckinTime: 100},
	})

	summaries := agg.Finalize()
	require.Len(t, summaries, 1)
	assert.Equal(t, summaries[0].CheckinTime, summaries[0].CheckoutTime)
	assert.Equal(t, "0h 0m", summaries[0].WorkingTime)
}

func TestWorkingTime(t *testing.T) {
	t0 := int64(1700000000000)
	assert.Equal(t, "0h 0m", workingTime(t0, t0))
	assert.Equal(t, "2h 5m", workingTime(t0, t0+125*60*1000))
	assert.Equal(t, "0h 0m", workingTime(t0, t0+59*1000)) // under one minute floors away
	assert.Equal(t, "8h 30m", workingTime(t0, t0+510*60*1000))
}

func TestNewTimeFormatter_FixedOffsetDisplay(t *testing.T) {
	conf := &structures.Config{
		Display: structures.DisplayConfig{ZoneName: "UTC+7", UTCOffset: 7 * time.Hour},
	}
	format := NewTimeFormatter(conf)

	// 2024-01-15T17:30:05Z is 00:30:05 on the 16th at UTC+7.
	assert.Equal(t, "00:30:05 16/01/2024", format(1705339805000))
}
