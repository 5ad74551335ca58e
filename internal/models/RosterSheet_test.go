package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleTeam() []TeamMember {
	return []TeamMember{{
		TeamName:    "T1",
		TeamLeader:  "Alice",
		RegLeader:   "R1",
		RegMember1:  NotSpecified,
		RegMember2:  NotSpecified,
		TeamMember1: "",
		TeamMember2: "",
	}}
}

func TestParticipants_SkipsUnspecifiedSlots(t *testing.T) {
	team := TeamMember{
		TeamName: "T2", TeamLeader: "Ann", RegLeader: "R10",
		TeamMember1: "Ben", RegMember1: "",
		TeamMember2: "Cat", RegMember2: "R12",
	}

	p := team.Participants()
	require.Len(t, p, 2)
	assert.Equal(t, RosterEntry{RegistrationNumber: "R10", DisplayName: "Ann", TeamName: "T2"}, p[0])
	assert.Equal(t, "R12", p[1].RegistrationNumber)
}

func TestRosterSheet_ToggleAndRecords(t *testing.T) {
	sheet := NewRosterSheet("AI/ML Bootcamp", 3, singleTeam())

	selected, err := sheet.Toggle("R1")
	require.NoError(t, err)
	assert.True(t, selected)

	records := sheet.Records()
	require.Len(t, records, 1)
	assert.Equal(t, AttendanceRecord{
		RegNo:     "R1",
		Name:      "Alice",
		Day:       "3",
		EventType: "bootcamp",
		Category:  "AI/ML",
	}, records[0])
}

func TestRosterSheet_ToggleTwiceDeselects(t *testing.T) {
	sheet := NewRosterSheet("Cyber Bootcamp", 1, singleTeam())
	_, _ = sheet.Toggle("R1")
	selected, err := sheet.Toggle("R1")

	require.NoError(t, err)
	assert.False(t, selected)
	assert.Empty(t, sheet.Records())
}

func TestRosterSheet_ToggleUnknown(t *testing.T) {
	sheet := NewRosterSheet("Cyber Bootcamp", 1, singleTeam())
	_, err := sheet.Toggle(NotSpecified)
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestRosterSheet_DuplicateRegNoKeepsFirstPosition(t *testing.T) {
	teams := []TeamMember{
		{TeamName: "A", TeamLeader: "Alice", RegLeader: "R1", TeamMember1: "Bob", RegMember1: "R2"},
		{TeamName: "B", TeamLeader: "Alicia", RegLeader: "R1"},
	}
	sheet := NewRosterSheet("Cyber Bootcamp", 2, teams)

	entries := sheet.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "R1", entries[0].RegistrationNumber)
	assert.Equal(t, "Alicia", entries[0].DisplayName)
}

func TestRosterSheet_ResetAndReload(t *testing.T) {
	sheet := NewRosterSheet("Innovate-X Hackathon", 2, singleTeam())
	_, _ = sheet.Toggle("R1")
	assert.Equal(t, 1, sheet.SelectedCount())

	sheet.Reset()
	assert.Equal(t, 0, sheet.SelectedCount())

	_, _ = sheet.Toggle("R1")
	sheet.Reload(append(singleTeam(), TeamMember{TeamName: "T9", TeamLeader: "Zed", RegLeader: "R9"}))
	assert.Equal(t, 0, sheet.SelectedCount())
	assert.Len(t, sheet.Entries(), 2)
	assert.Len(t, sheet.Teams(), 2)
}

func TestRosterSheet_HackathonRecord(t *testing.T) {
	sheet := NewRosterSheet("Innovate-X Hackathon", 2, singleTeam())
	_, _ = sheet.Toggle("R1")

	records := sheet.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "hackathon", records[0].EventType)
	assert.Equal(t, "General", records[0].Category)
	assert.Equal(t, "2", records[0].Day)
}
