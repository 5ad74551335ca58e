package controllers

import (
	"net/http"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"rollcall/internal/services"
)

type rosterView struct {
	ID            string               `json:"id"`
	Track         string               `json:"track"`
	Day           int                  `json:"day"`
	Teams         []models.TeamMember  `json:"teams"`
	Entries       []models.RosterEntry `json:"entries"`
	SelectedCount int                  `json:"selected_count"`
}

func newRosterView(id string, sheet *models.RosterSheet) rosterView {
	return rosterView{
		ID:            id,
		Track:         sheet.Track(),
		Day:           sheet.Day(),
		Teams:         sheet.Teams(),
		Entries:       sheet.Entries(),
		SelectedCount: sheet.SelectedCount(),
	}
}

type toggleRequest struct {
	RegNo string `json:"regno"`
}

type RosterController struct {
	logger  providers.Logger
	service services.AttendanceServiceInterface
}

func NewRosterController(logger providers.Logger, service services.AttendanceServiceInterface) *RosterController {
	return &RosterController{logger: logger, service: service}
}

func (rc *RosterController) Open(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}
	day, err := req.day()
	if err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}

	id, sheet, err := rc.service.OpenSheet(r.Context(), req.Track, day)
	if err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRosterView(id, sheet))
}

func (rc *RosterController) Show(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sheet, err := rc.service.Sheet(id)
	if err != nil {
		writeError(w, rc.logger, providers.TypeGet, err)
		return
	}
	writeJSON(w, http.StatusOK, newRosterView(id, sheet))
}

func (rc *RosterController) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req toggleRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}

	selected, err := rc.service.Toggle(id, req.RegNo)
	if err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}
	sheet, err := rc.service.Sheet(id)
	if err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"regno":          req.RegNo,
		"selected":       selected,
		"selected_count": sheet.SelectedCount(),
	})
}

func (rc *RosterController) Reload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sheet, err := rc.service.ReloadSheet(r.Context(), id)
	if err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}
	writeJSON(w, http.StatusOK, newRosterView(id, sheet))
}

func (rc *RosterController) Submit(w http.ResponseWriter, r *http.Request) {
	res, err := rc.service.Submit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, rc.logger, providers.TypePost, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (rc *RosterController) Close(w http.ResponseWriter, r *http.Request) {
	if !rc.service.CloseSheet(r.PathValue("id")) {
		writeError(w, rc.logger, providers.TypePost, services.ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
