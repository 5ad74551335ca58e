package models

import (
	"slices"
	"strings"
)

type AttendanceRow struct {
	RegistrationNumber string `json:"registration_number"`
	Name               string `json:"name"`
	TeamName           string `json:"team_name"`
	Day                string `json:"day"`
	Timestamp          string `json:"timestamp"`
}

type MemberRecord struct {
	Name               string          `json:"name"`
	RegistrationNumber string          `json:"registration_number"`
	Presence           map[string]bool `json:"attendance"`
}

// Present reports whether the member was recorded on day. Days that were
// never recorded are absent from the map and read as false.
func (m *MemberRecord) Present(day string) bool {
	return m.Presence[day]
}

type TeamRecord struct {
	TeamName string          `json:"team_name"`
	Members  []*MemberRecord `json:"members"`
}

func (t *TeamRecord) member(regNo string) *MemberRecord {
	for _, m := range t.Members {
		if m.RegistrationNumber == regNo {
			return m
		}
	}
	return nil
}

// AggregateRoster groups attendance rows into teams sorted by name. Members
// keep the order in which they first appear in rows.
func AggregateRoster(rows []AttendanceRow) []*TeamRecord {
	teams := make([]*TeamRecord, 0)
	byName := make(map[string]*TeamRecord)

	for _, row := range rows {
		team, ok := byName[row.TeamName]
		if !ok {
			team = &TeamRecord{TeamName: row.TeamName, Members: make([]*MemberRecord, 0)}
			byName[row.TeamName] = team
			teams = append(teams, team)
		}

		member := team.member(row.RegistrationNumber)
		if member == nil {
			member = &MemberRecord{
				Name:               row.Name,
				RegistrationNumber: row.RegistrationNumber,
				Presence:           make(map[string]bool),
			}
			team.Members = append(team.Members, member)
		}
		member.Presence[row.Day] = true
	}

	slices.SortStableFunc(teams, func(a, b *TeamRecord) int {
		return strings.Compare(a.TeamName, b.TeamName)
	})
	return teams
}
