package controllers

import (
	"errors"
	"net/http"
	"rollcall/internal/backend"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"rollcall/internal/services"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

var errBadRequest = errors.New("Bad Request")

type errorResponse struct {
	Error string `json:"error"`
}

// selectionRequest opens a roster sheet or scan session. Day arrives either
// as a number or as the string picked from a select box.
type selectionRequest struct {
	Track string `json:"track"`
	Day   any    `json:"day"`
}

func (s selectionRequest) day() (int, error) {
	day, err := cast.ToIntE(s.Day)
	if err != nil {
		return 0, services.ErrInvalidDay
	}
	return day, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadRequest
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, services.ErrMissingTrack),
		errors.Is(err, services.ErrInvalidDay),
		errors.Is(err, services.ErrNothingSelected),
		errors.Is(err, services.ErrNothingScanned),
		errors.Is(err, models.ErrUnknownParticipant):
		return http.StatusBadRequest
	case backend.IsBackendError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger providers.Logger, t providers.TypeEnum, err error) {
	status := statusFor(err)
	msg := backend.UserMessage(err)
	if status == http.StatusInternalServerError {
		logger.Errorf(t, "Unhandled error: %s", err)
		msg = "Internal Server Error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// serveFromCacheOrCompute answers GETs from the rendered-response cache.
// Failed computations are never cached.
func serveFromCacheOrCompute(w http.ResponseWriter, cache providers.CacheProviderInterface, logger providers.Logger, cacheKey string, compute func() (any, error)) {
	if data, ok := cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, logger, providers.TypeGet, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
