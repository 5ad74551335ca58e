package controllers

import (
	"errors"
	"net/http"
	"rollcall/internal/providers"
	"rollcall/internal/scanner"
	"rollcall/internal/services"
)

type scanView struct {
	ID    string        `json:"id"`
	Track string        `json:"track"`
	Day   int           `json:"day"`
	State scanner.State `json:"state"`
}

type detectRequest struct {
	Detections []struct {
		Text  string `json:"text"`
		Error string `json:"error,omitempty"`
	} `json:"detections"`
}

func (d detectRequest) detections() []scanner.Detection {
	out := make([]scanner.Detection, 0, len(d.Detections))
	for _, det := range d.Detections {
		item := scanner.Detection{Text: det.Text}
		if det.Error != "" {
			item.Err = errors.New(det.Error)
		}
		out = append(out, item)
	}
	return out
}

type detectResponse struct {
	Outcomes []scanner.Outcome `json:"outcomes"`
	State    scanner.State     `json:"state"`
}

type ScanController struct {
	logger  providers.Logger
	service services.ScanServiceInterface
}

func NewScanController(logger providers.Logger, service services.ScanServiceInterface) *ScanController {
	return &ScanController{logger: logger, service: service}
}

func (sc *ScanController) Open(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}
	day, err := req.day()
	if err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}

	id, session, err := sc.service.Open(req.Track, day)
	if err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}
	writeJSON(w, http.StatusCreated, scanView{ID: id, Track: session.Track, Day: session.Day, State: session.Dedup.Snapshot()})
}

func (sc *ScanController) Show(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session, err := sc.service.Get(id)
	if err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}
	writeJSON(w, http.StatusOK, scanView{ID: id, Track: session.Track, Day: session.Day, State: session.Dedup.Snapshot()})
}

func (sc *ScanController) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}

	outcomes, state, err := sc.service.Detect(r.PathValue("id"), req.detections())
	if err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}
	writeJSON(w, http.StatusOK, detectResponse{Outcomes: outcomes, State: state})
}

func (sc *ScanController) stateAction(action func(string) (scanner.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := action(r.PathValue("id"))
		if err != nil {
			writeError(w, sc.logger, providers.TypeScan, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (sc *ScanController) Pause(w http.ResponseWriter, r *http.Request) {
	sc.stateAction(sc.service.Pause)(w, r)
}

func (sc *ScanController) Resume(w http.ResponseWriter, r *http.Request) {
	sc.stateAction(sc.service.Resume)(w, r)
}

func (sc *ScanController) Toggle(w http.ResponseWriter, r *http.Request) {
	sc.stateAction(sc.service.Toggle)(w, r)
}

func (sc *ScanController) Send(w http.ResponseWriter, r *http.Request) {
	n, err := sc.service.Send(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, sc.logger, providers.TypeScan, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sent": n})
}

func (sc *ScanController) Close(w http.ResponseWriter, r *http.Request) {
	if !sc.service.Close(r.PathValue("id")) {
		writeError(w, sc.logger, providers.TypeScan, services.ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
