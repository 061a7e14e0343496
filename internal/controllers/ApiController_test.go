package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aad/internal/attendance"
	"aad/internal/models"
	"aad/internal/providers"
	"aad/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockService struct {
	queries []attendance.Query
	report  *models.Report
	err     error
	runs    int64
	events  int64
}

func (m *mockService) AggregateCheckins(_ context.Context, q attendance.Query) (*models.Report, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}
func (m *mockService) RunsTotal() int64   { return m.runs }
func (m *mockService) EventsTotal() int64 { return m.events }

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.data[key] = value }

// --- helpers ---

func newTestController(svc *mockService, cache *mockCache) *ApiController {
	return NewApiController(&mockLogger{}, svc, cache)
}

func emptyReport() *models.Report {
	return &models.Report{Days: []models.DaySummary{}, Failed: []models.Segment{}}
}

// --- GetAttendance tests ---

func TestGetAttendance_ReturnsReport(t *testing.T) {
	svc := &mockService{report: &models.Report{
		Days: []models.DaySummary{
			{Date: "2024-01-01", PersonID: "p1", CheckinTime: 100, CheckoutTime: 200, WorkingTime: "0h 0m", TotalRecords: 2},
		},
		Failed: []models.Segment{},
	}}
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000", nil)
	rr := httptest.NewRecorder()
	ac.GetAttendance(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var report models.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	require.Len(t, report.Days, 1)
	assert.Equal(t, "p1", report.Days[0].PersonID)

	require.Len(t, svc.queries, 1)
	assert.Equal(t, "pl1", svc.queries[0].PlaceID)
	assert.Equal(t, int64(0), svc.queries[0].From)
	assert.Equal(t, int64(1000), svc.queries[0].To)
}

func TestGetAttendance_DevicesForwarded(t *testing.T) {
	svc := &mockService{report: emptyReport()}
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000&devices=d1,d2", nil)
	ac.GetAttendance(httptest.NewRecorder(), req)

	require.Len(t, svc.queries, 1)
	assert.Equal(t, "d1,d2", svc.queries[0].Devices)
}

func TestGetAttendance_MissingPlaceID(t *testing.T) {
	ac := newTestController(&mockService{report: emptyReport()}, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/attendance?from=0&to=1000", nil)
	rr := httptest.NewRecorder()
	ac.GetAttendance(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAttendance_MalformedTimestamps(t *testing.T) {
	ac := newTestController(&mockService{report: emptyReport()}, newMockCache())

	for _, query := range []string{
		"placeId=pl1&from=abc&to=1000",
		"placeId=pl1&from=0&to=xyz",
		"placeId=pl1&from=1000&to=1000",
		"placeId=pl1&from=2000&to=1000",
	} {
		rr := httptest.NewRecorder()
		ac.GetAttendance(rr, httptest.NewRequest(http.MethodGet, "/attendance?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "query %q", query)
	}
}

func TestGetAttendance_AuthErrorMapsToBadGateway(t *testing.T) {
	svc := &mockService{err: &upstream.AuthError{Err: errors.New("no token")}}
	ac := newTestController(svc, newMockCache())

	rr := httptest.NewRecorder()
	ac.GetAttendance(rr, httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGetAttendance_DeadlineMapsToGatewayTimeout(t *testing.T) {
	svc := &mockService{err: context.DeadlineExceeded}
	ac := newTestController(svc, newMockCache())

	rr := httptest.NewRecorder()
	ac.GetAttendance(rr, httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000", nil))

	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
}

func TestGetAttendance_ServedFromCache(t *testing.T) {
	svc := &mockService{report: emptyReport()}
	cache := newMockCache()
	ac := newTestController(svc, cache)

	req := httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000", nil)
	ac.GetAttendance(httptest.NewRecorder(), req)
	require.Len(t, svc.queries, 1)

	// Second identical request must come from cache, not the pipeline.
	req = httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000", nil)
	rr := httptest.NewRecorder()
	ac.GetAttendance(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, svc.queries, 1)
}

func TestGetAttendance_ErrorsNotCached(t *testing.T) {
	svc := &mockService{err: errors.New("boom")}
	cache := newMockCache()
	ac := newTestController(svc, cache)

	rr := httptest.NewRecorder()
	ac.GetAttendance(rr, httptest.NewRequest(http.MethodGet, "/attendance?placeId=pl1&from=0&to=1000", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, cache.data)
}
