package services

import (
	"context"
	"fmt"
	"rollcall/internal/backend"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"rollcall/internal/sessions"
	"rollcall/internal/structures"
	"strings"
)

const SessionKindRoster = "roster"

type SubmitResult struct {
	Message string                    `json:"message"`
	Summary models.AttendanceSummary  `json:"summary"`
	Partial bool                      `json:"partial"`
	Records []models.AttendanceRecord `json:"records"`
}

type AttendanceServiceInterface interface {
	Tracks() []models.Track
	ListTeams(ctx context.Context, track string) (*models.TeamsResponse, error)
	OpenSheet(ctx context.Context, track string, day int) (string, *models.RosterSheet, error)
	Sheet(id string) (*models.RosterSheet, error)
	ReloadSheet(ctx context.Context, id string) (*models.RosterSheet, error)
	Toggle(id, regNo string) (bool, error)
	Submit(ctx context.Context, id string) (*SubmitResult, error)
	CloseSheet(id string) bool
	OpenSheets() int
	SweepIdle() int
}

type AttendanceService struct {
	client  backend.ClientInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	sheets  *sessions.Registry[*models.RosterSheet]
}

func NewAttendanceService(conf *structures.Config, client backend.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) AttendanceServiceInterface {
	return &AttendanceService{
		client:  client,
		logger:  logger,
		metrics: metrics,
		sheets:  sessions.NewRegistry[*models.RosterSheet](conf.Sessions.IdleTTL),
	}
}

func validateSelection(track string, day int) error {
	if strings.TrimSpace(track) == "" {
		return ErrMissingTrack
	}
	if !models.ValidDay(track, day) {
		return fmt.Errorf("%w: day %d", ErrInvalidDay, day)
	}
	return nil
}

func (as *AttendanceService) Tracks() []models.Track {
	return models.Tracks()
}

func (as *AttendanceService) ListTeams(ctx context.Context, track string) (*models.TeamsResponse, error) {
	if strings.TrimSpace(track) == "" {
		return nil, ErrMissingTrack
	}
	return as.client.GetTeamsByCategory(ctx, models.CategorySlug(track))
}

func (as *AttendanceService) fetchTeams(ctx context.Context, track string) ([]models.TeamMember, error) {
	resp, err := as.client.GetTeamsByCategory(ctx, models.CategorySlug(track))
	if err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

func (as *AttendanceService) OpenSheet(ctx context.Context, track string, day int) (string, *models.RosterSheet, error) {
	if err := validateSelection(track, day); err != nil {
		return "", nil, err
	}

	teams, err := as.fetchTeams(ctx, track)
	if err != nil {
		return "", nil, err
	}

	sheet := models.NewRosterSheet(track, day, teams)
	id := as.sheets.Add(sheet)
	as.metrics.SetOpenSessions(SessionKindRoster, as.sheets.Len())
	as.logger.Infof(providers.TypeApp, "Roster %s opened for %s day %d (%d participants)", id, track, day, len(sheet.Entries()))
	return id, sheet, nil
}

func (as *AttendanceService) Sheet(id string) (*models.RosterSheet, error) {
	sheet, ok := as.sheets.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sheet, nil
}

// ReloadSheet re-fetches the team list; current selections are dropped.
func (as *AttendanceService) ReloadSheet(ctx context.Context, id string) (*models.RosterSheet, error) {
	sheet, err := as.Sheet(id)
	if err != nil {
		return nil, err
	}

	teams, err := as.fetchTeams(ctx, sheet.Track())
	if err != nil {
		return nil, err
	}
	sheet.Reload(teams)
	return sheet, nil
}

func (as *AttendanceService) Toggle(id, regNo string) (bool, error) {
	sheet, err := as.Sheet(id)
	if err != nil {
		return false, err
	}
	return sheet.Toggle(regNo)
}

// Submit posts every selected entry and resets the sheet on success. A batch
// the backend accepted with some failed records is still a success but is
// flagged as partial.
func (as *AttendanceService) Submit(ctx context.Context, id string) (*SubmitResult, error) {
	sheet, err := as.Sheet(id)
	if err != nil {
		return nil, err
	}

	records := sheet.Records()
	if len(records) == 0 {
		return nil, ErrNothingSelected
	}

	resp, err := as.client.SubmitAttendance(ctx, &models.AttendanceRequest{AttendanceRecords: records})
	if err != nil {
		as.logger.Errorf(providers.TypePost, "Roster %s submit failed: %s", id, err)
		return nil, err
	}

	sheet.Reset()

	result := &SubmitResult{
		Message: fmt.Sprintf("Successfully recorded attendance for %d people!", resp.Summary.Successful),
		Summary: resp.Summary,
		Partial: resp.Summary.Failed > 0,
		Records: records,
	}
	if result.Partial {
		as.logger.Warnf(providers.TypePost, "Roster %s: %d of %d records failed", id, resp.Summary.Failed, resp.Summary.TotalRecords)
	} else {
		as.logger.Infof(providers.TypePost, "Roster %s: recorded %d records", id, resp.Summary.Successful)
	}
	return result, nil
}

func (as *AttendanceService) CloseSheet(id string) bool {
	_, ok := as.sheets.Remove(id)
	as.metrics.SetOpenSessions(SessionKindRoster, as.sheets.Len())
	return ok
}

func (as *AttendanceService) OpenSheets() int {
	return as.sheets.Len()
}

func (as *AttendanceService) SweepIdle() int {
	n := as.sheets.Sweep()
	as.metrics.SetOpenSessions(SessionKindRoster, as.sheets.Len())
	return n
}
