package services

import (
	"context"
	"rollcall/internal/backend"
	"rollcall/internal/models"
	"rollcall/internal/structures"
	"rollcall/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Scanner:  structures.ScannerConfig{Cooldown: time.Second},
		Sessions: structures.SessionsConfig{IdleTTL: time.Minute, SweepInterval: time.Minute},
	}
}

func aimlTeams() map[string][]models.TeamMember {
	return map[string][]models.TeamMember{
		"aiml": {
			{TeamName: "Alpha", TeamLeader: "Alice", RegLeader: "R1", TeamMember1: "Bob", RegMember1: "R2", TeamMember2: models.NotSpecified},
			{TeamName: "Beta", TeamLeader: "Carol", RegLeader: "R3"},
		},
	}
}

func newAttendance(t *testing.T) (*AttendanceService, *testutil.MockBackend, *testutil.MockLogger, *testutil.MockMetrics) {
	t.Helper()
	client := &testutil.MockBackend{Teams: aimlTeams()}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	as := NewAttendanceService(testConfig(), client, logger, metrics).(*AttendanceService)
	return as, client, logger, metrics
}

func TestTracks_ListsAllTracks(t *testing.T) {
	as, _, _, _ := newAttendance(t)
	tracks := as.Tracks()
	require.Len(t, tracks, 4)
	assert.Equal(t, "Innovate-X Hackathon", tracks[3].Name)
	assert.Equal(t, []int{1, 2}, tracks[3].Days)
}

func TestListTeams_UsesCategorySlug(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	resp, err := as.ListTeams(context.Background(), "AI/ML Bootcamp")
	require.NoError(t, err)
	assert.Len(t, resp.Teams, 2)
	assert.Equal(t, []string{"aiml"}, client.TeamsCalls)
}

func TestListTeams_MissingTrack(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	_, err := as.ListTeams(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingTrack)
	assert.Empty(t, client.TeamsCalls)
}

func TestOpenSheet_ValidatesDay(t *testing.T) {
	as, client, _, _ := newAttendance(t)

	_, _, err := as.OpenSheet(context.Background(), "Innovate-X Hackathon", 3)
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, _, err = as.OpenSheet(context.Background(), "AI/ML Bootcamp", 0)
	assert.ErrorIs(t, err, ErrInvalidDay)
	assert.Empty(t, client.TeamsCalls)
}

func TestOpenSheet_BackendFailure(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	client.TeamsErr = &backend.HTTPError{Op: backend.OpTeams, Status: 500}

	_, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.Error(t, err)
	assert.True(t, backend.IsBackendError(err))
	assert.Equal(t, 0, as.OpenSheets())
}

func TestOpenSheet_TracksOpenSessions(t *testing.T) {
	as, _, _, metrics := newAttendance(t)

	id, sheet, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, sheet.Entries(), 3)
	assert.Equal(t, 1, metrics.OpenSessions[SessionKindRoster])

	assert.True(t, as.CloseSheet(id))
	assert.False(t, as.CloseSheet(id))
	assert.Equal(t, 0, metrics.OpenSessions[SessionKindRoster])

	_, err = as.Sheet(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSheets_AreIndependent(t *testing.T) {
	as, _, _, _ := newAttendance(t)
	first, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)
	second, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)

	_, err = as.Toggle(first, "R1")
	require.NoError(t, err)

	s1, _ := as.Sheet(first)
	s2, _ := as.Sheet(second)
	assert.Equal(t, 1, s1.SelectedCount())
	assert.Equal(t, 0, s2.SelectedCount())
}

func TestSubmit_NothingSelected(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	id, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)

	_, err = as.Submit(context.Background(), id)
	assert.ErrorIs(t, err, ErrNothingSelected)
	assert.Equal(t, "Please select at least one person to mark attendance.", err.Error())
	assert.Empty(t, client.Submitted)
}

func TestSubmit_SendsRecordsAndResets(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	id, sheet, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 3)
	require.NoError(t, err)

	_, err = as.Toggle(id, "R1")
	require.NoError(t, err)

	res, err := as.Submit(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, client.Submitted, 1)
	assert.Equal(t, []models.AttendanceRecord{
		{RegNo: "R1", Name: "Alice", Day: "3", EventType: models.EventTypeBootcamp, Category: models.CategoryAIML},
	}, client.Submitted[0].AttendanceRecords)

	assert.Equal(t, "Successfully recorded attendance for 1 people!", res.Message)
	assert.False(t, res.Partial)
	assert.Equal(t, 0, sheet.SelectedCount())
}

func TestSubmit_HackathonRecords(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	client.Teams["fullstack"] = []models.TeamMember{{TeamName: "Gamma", TeamLeader: "Dan", RegLeader: "R9"}}

	id, _, err := as.OpenSheet(context.Background(), "Innovate-X Hackathon", 2)
	require.NoError(t, err)
	_, err = as.Toggle(id, "R9")
	require.NoError(t, err)

	_, err = as.Submit(context.Background(), id)
	require.NoError(t, err)
	rec := client.Submitted[0].AttendanceRecords[0]
	assert.Equal(t, models.EventTypeHackathon, rec.EventType)
	assert.Equal(t, models.CategoryGeneral, rec.Category)
	assert.Equal(t, "2", rec.Day)
}

func TestSubmit_PartialFailureIsFlagged(t *testing.T) {
	as, client, logger, _ := newAttendance(t)
	client.SubmitResponse = &models.AttendanceResponse{
		Envelope: models.Envelope{Success: true},
		Summary:  models.AttendanceSummary{TotalRecords: 2, Successful: 1, Failed: 1},
	}

	id, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)
	_, _ = as.Toggle(id, "R1")
	_, _ = as.Toggle(id, "R2")

	res, err := as.Submit(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Equal(t, "Successfully recorded attendance for 1 people!", res.Message)
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestSubmit_FailureKeepsSelection(t *testing.T) {
	as, client, logger, _ := newAttendance(t)
	client.SubmitErr = &backend.ApplicationError{Op: backend.OpSubmit, Message: "Failed to record attendance"}

	id, sheet, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)
	_, _ = as.Toggle(id, "R1")

	_, err = as.Submit(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, "Failed to record attendance", backend.UserMessage(err))
	assert.Equal(t, 1, sheet.SelectedCount())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestReloadSheet_DropsSelections(t *testing.T) {
	as, client, _, _ := newAttendance(t)
	id, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)
	_, _ = as.Toggle(id, "R1")

	client.Teams["aiml"] = append(client.Teams["aiml"], models.TeamMember{TeamName: "Delta", TeamLeader: "Eve", RegLeader: "R7"})
	sheet, err := as.ReloadSheet(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, sheet.Entries(), 4)
	assert.Equal(t, 0, sheet.SelectedCount())
}

func TestToggle_UnknownSession(t *testing.T) {
	as, _, _, _ := newAttendance(t)
	_, err := as.Toggle("nope", "R1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAttendanceSweepIdle(t *testing.T) {
	conf := testConfig()
	conf.Sessions.IdleTTL = time.Nanosecond
	as := NewAttendanceService(conf, &testutil.MockBackend{Teams: aimlTeams()}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	_, _, err := as.OpenSheet(context.Background(), "AI/ML Bootcamp", 1)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	assert.Equal(t, 1, as.SweepIdle())
	assert.Equal(t, 0, as.OpenSheets())
}
