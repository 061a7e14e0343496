package testutil

import (
	"context"
	"sync"

	"aad/internal/models"
	"aad/internal/providers"
	"aad/internal/upstream"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockTokenSource implements upstream.TokenSource with a fixed token or error.
type MockTokenSource struct {
	mu       sync.Mutex
	TokenVal string
	Err      error
	Calls    int
}

func (m *MockTokenSource) Token(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.TokenVal, nil
}

// MockFetcher implements upstream.CheckinAPI with scripted per-segment
// behavior. Responses maps a segment start to the records it yields;
// FailuresLeft maps a segment start to the number of attempts that must
// fail before a fetch succeeds.
type MockFetcher struct {
	mu           sync.Mutex
	Responses    map[int64][]models.CheckinRecord
	FailuresLeft map[int64]int
	FailWith     error
	FetchCalls   []models.Segment
}

func (m *MockFetcher) FetchSegment(_ context.Context, q upstream.SegmentQuery) ([]models.CheckinRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls = append(m.FetchCalls, q.Segment)

	if left, ok := m.FailuresLeft[q.Segment.Start]; ok && left > 0 {
		m.FailuresLeft[q.Segment.Start] = left - 1
		if m.FailWith != nil {
			return nil, m.FailWith
		}
		return nil, &upstream.HTTPStatusError{StatusCode: 503}
	}
	return m.Responses[q.Segment.Start], nil
}
