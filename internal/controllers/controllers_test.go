package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"rollcall/internal/models"
	"rollcall/internal/services"
	"rollcall/internal/structures"
	"rollcall/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// --- helpers shared by controller tests ---

func testConfig() *structures.Config {
	return &structures.Config{
		Scanner:  structures.ScannerConfig{Cooldown: time.Millisecond},
		Sessions: structures.SessionsConfig{IdleTTL: time.Minute, SweepInterval: time.Minute},
	}
}

func testBackend() *testutil.MockBackend {
	return &testutil.MockBackend{
		Teams: map[string][]models.TeamMember{
			"aiml": {
				{TeamName: "Alpha", TeamLeader: "Alice", RegLeader: "R1", TeamMember1: "Bob", RegMember1: "R2"},
			},
		},
		Dashboard: map[string][]models.AttendanceRow{
			"aiml": {
				{RegistrationNumber: "R1", Name: "Alice", TeamName: "Alpha", Day: "1"},
				{RegistrationNumber: "R2", Name: "Bob", TeamName: "Alpha", Day: "2"},
			},
		},
	}
}

func newAttendance(client *testutil.MockBackend) services.AttendanceServiceInterface {
	return services.NewAttendanceService(testConfig(), client, &testutil.MockLogger{}, &testutil.MockMetrics{})
}

func newScan(client *testutil.MockBackend) services.ScanServiceInterface {
	return services.NewScanService(testConfig(), client, &testutil.MockLogger{}, &testutil.MockMetrics{})
}

func request(method, target, body string, pathValues ...string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst))
}
