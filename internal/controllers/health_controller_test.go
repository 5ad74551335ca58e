package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	client := testBackend()
	attendance := newAttendance(client)
	scan := newScan(client)
	_, _, err := attendance.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)

	hc := NewHealthController(attendance, scan, client)
	rr := httptest.NewRecorder()
	hc.Health(rr, request(http.MethodGet, "/health", ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	decode(t, rr, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, float64(1), resp["open_sheets"])
	assert.Equal(t, float64(0), resp["open_scans"])
	assert.Equal(t, float64(0), resp["backend_in_flight"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	client := testBackend()
	hc := NewHealthController(newAttendance(client), newScan(client), client)

	rr := httptest.NewRecorder()
	hc.Health(rr, request(http.MethodPost, "/health", ""))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "1h1m1s", formatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
