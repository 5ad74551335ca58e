package testutil

import (
	"context"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"sync"
	"time"
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

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu           sync.Mutex
	backendCalls []string
	Scans        map[string]int
	OpenSessions map[string]int
	CacheHits    int
	CacheMisses  int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveBackendRequest(operation string, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backendCalls = append(m.backendCalls, operation+":"+outcome)
}

func (m *MockMetrics) IncScans(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Scans == nil {
		m.Scans = make(map[string]int)
	}
	m.Scans[outcome]++
}

func (m *MockMetrics) SetOpenSessions(kind string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenSessions == nil {
		m.OpenSessions = make(map[string]int)
	}
	m.OpenSessions[kind] = count
}

func (m *MockMetrics) BackendCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.backendCalls))
	copy(out, m.backendCalls)
	return out
}

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

// MockBackend implements backend.ClientInterface with canned responses.
type MockBackend struct {
	mu sync.Mutex

	Teams          map[string][]models.TeamMember
	TeamsErr       error
	Dashboard      map[string][]models.AttendanceRow
	DashboardErr   error
	SubmitResponse *models.AttendanceResponse
	SubmitErr      error
	BarcodesErr    error

	// OnBarcodes runs before SendBarcodes answers, outside the mock's lock.
	OnBarcodes func(batch *models.BarcodeBatch)

	TeamsCalls     []string
	DashboardCalls []string
	Submitted      []*models.AttendanceRequest
	Barcodes       []*models.BarcodeBatch
}

func (m *MockBackend) GetTeamsByCategory(_ context.Context, category string) (*models.TeamsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamsCalls = append(m.TeamsCalls, category)
	if m.TeamsErr != nil {
		return nil, m.TeamsErr
	}
	teams := m.Teams[category]
	return &models.TeamsResponse{
		Envelope: models.Envelope{Success: true},
		Category: category,
		Count:    len(teams),
		Teams:    teams,
	}, nil
}

func (m *MockBackend) SubmitAttendance(_ context.Context, req *models.AttendanceRequest) (*models.AttendanceResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submitted = append(m.Submitted, req)
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	if m.SubmitResponse != nil {
		return m.SubmitResponse, nil
	}
	n := len(req.AttendanceRecords)
	return &models.AttendanceResponse{
		Envelope: models.Envelope{Success: true, Message: "Attendance recorded"},
		Summary:  models.AttendanceSummary{TotalRecords: n, Successful: n},
	}, nil
}

func (m *MockBackend) GetDashboardAttendance(_ context.Context, category string) (*models.DashboardResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DashboardCalls = append(m.DashboardCalls, category)
	if m.DashboardErr != nil {
		return nil, m.DashboardErr
	}
	rows := m.Dashboard[category]
	return &models.DashboardResponse{
		Envelope:        models.Envelope{Success: true},
		Category:        category,
		TotalAttendance: len(rows),
		AttendanceData:  rows,
	}, nil
}

func (m *MockBackend) SendBarcodes(_ context.Context, batch *models.BarcodeBatch) error {
	if m.OnBarcodes != nil {
		m.OnBarcodes(batch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Barcodes = append(m.Barcodes, batch)
	return m.BarcodesErr
}

func (m *MockBackend) InFlight() int64 { return 0 }
