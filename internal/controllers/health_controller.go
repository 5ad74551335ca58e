package controllers

import (
	"fmt"
	"net/http"
	"rollcall/internal/backend"
	"rollcall/internal/services"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	attendance services.AttendanceServiceInterface
	scan       services.ScanServiceInterface
	client     backend.ClientInterface
	startTime  time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	OpenSheets      int     `json:"open_sheets"`
	OpenScans       int     `json:"open_scans"`
	BackendInFlight int64   `json:"backend_in_flight"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:          "ok",
		Uptime:          formatDuration(uptime),
		UptimeSeconds:   uptime.Seconds(),
		OpenSheets:      hc.attendance.OpenSheets(),
		OpenScans:       hc.scan.OpenSessions(),
		BackendInFlight: hc.client.InFlight(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(attendance services.AttendanceServiceInterface, scan services.ScanServiceInterface, client backend.ClientInterface) *HealthController {
	return &HealthController{
		attendance: attendance,
		scan:       scan,
		client:     client,
		startTime:  time.Now(),
	}
}
