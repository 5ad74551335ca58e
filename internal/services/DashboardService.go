package services

import (
	"context"
	"rollcall/internal/backend"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"strconv"
	"strings"
)

type MemberView struct {
	Name               string           `json:"name"`
	NameSegments       []models.Segment `json:"name_segments"`
	RegistrationNumber string           `json:"registration_number"`
	RegNoSegments      []models.Segment `json:"registration_number_segments"`
	Attendance         map[string]bool  `json:"attendance"`
}

type TeamView struct {
	TeamName         string           `json:"team_name"`
	TeamNameSegments []models.Segment `json:"team_name_segments"`
	Members          []MemberView     `json:"members"`
}

// DashboardView is the teams x days matrix for one category.
type DashboardView struct {
	Category        string     `json:"category"`
	TotalAttendance int        `json:"total_attendance"`
	Query           string     `json:"query,omitempty"`
	Days            []string   `json:"days"`
	Teams           []TeamView `json:"teams"`
}

type DashboardServiceInterface interface {
	Categories() []models.DashboardCategory
	View(ctx context.Context, category, query string) (*DashboardView, error)
}

type DashboardService struct {
	client backend.ClientInterface
	logger providers.Logger
}

func NewDashboardService(client backend.ClientInterface, logger providers.Logger) DashboardServiceInterface {
	return &DashboardService{client: client, logger: logger}
}

func (ds *DashboardService) Categories() []models.DashboardCategory {
	return models.DashboardCategories()
}

func (ds *DashboardService) View(ctx context.Context, category, query string) (*DashboardView, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrMissingTrack
	}

	resp, err := ds.client.GetDashboardAttendance(ctx, category)
	if err != nil {
		return nil, err
	}

	days := make([]string, 0)
	for _, d := range models.DaysFor(category) {
		days = append(days, strconv.Itoa(d))
	}

	teams := models.FilterTeams(models.AggregateRoster(resp.AttendanceData), query)
	ds.logger.Debugf(providers.TypeGet, "Dashboard %s: %d rows, %d teams after filter %q", category, len(resp.AttendanceData), len(teams), query)

	view := &DashboardView{
		Category:        resp.Category,
		TotalAttendance: resp.TotalAttendance,
		Query:           query,
		Days:            days,
		Teams:           make([]TeamView, 0, len(teams)),
	}
	if view.Category == "" {
		view.Category = category
	}

	for _, team := range teams {
		tv := TeamView{
			TeamName:         team.TeamName,
			TeamNameSegments: models.Highlight(team.TeamName, query),
			Members:          make([]MemberView, 0, len(team.Members)),
		}
		for _, m := range team.Members {
			attendance := make(map[string]bool, len(days))
			for _, d := range days {
				attendance[d] = m.Present(d)
			}
			tv.Members = append(tv.Members, MemberView{
				Name:               m.Name,
				NameSegments:       models.Highlight(m.Name, query),
				RegistrationNumber: m.RegistrationNumber,
				RegNoSegments:      models.Highlight(m.RegistrationNumber, query),
				Attendance:         attendance,
			})
		}
		view.Teams = append(view.Teams, tv)
	}
	return view, nil
}
