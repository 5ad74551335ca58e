package models

import "strings"

const (
	EventTypeBootcamp  = "bootcamp"
	EventTypeHackathon = "hackathon"

	CategoryGeneral   = "General"
	CategoryAIML      = "AI/ML"
	CategoryCyber     = "Cyber"
	CategoryFullStack = "Full Stack"

	bootcampDays  = 5
	hackathonDays = 2
)

type Track struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Days []int  `json:"days"`
}

type EventDetails struct {
	EventType string `json:"event_type"`
	Category  string `json:"category"`
}

type DashboardCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var trackNames = []string{
	"AI/ML Bootcamp",
	"Cyber Bootcamp",
	"Full-Stack Bootcamp",
	"Innovate-X Hackathon",
}

// the hackathon reuses the full-stack team list
var categorySlugs = map[string]string{
	"AI/ML Bootcamp":       "aiml",
	"Cyber Bootcamp":       "cyber",
	"Full-Stack Bootcamp":  "fullstack",
	"Innovate-X Hackathon": "fullstack",
}

var dashboardCategories = []DashboardCategory{
	{Name: "AI/ML Bootcamp", Slug: "aiml"},
	{Name: "Cyber Bootcamp", Slug: "cyber"},
	{Name: "Full-Stack Bootcamp", Slug: "fullstack"},
}

func Tracks() []Track {
	tracks := make([]Track, 0, len(trackNames))
	for _, name := range trackNames {
		tracks = append(tracks, Track{
			Name: name,
			Slug: CategorySlug(name),
			Days: DaysFor(name),
		})
	}
	return tracks
}

func DashboardCategories() []DashboardCategory {
	out := make([]DashboardCategory, len(dashboardCategories))
	copy(out, dashboardCategories)
	return out
}

// CategorySlug maps a track display name to the backend category.
// Unknown names fall back to their lower-cased form.
func CategorySlug(track string) string {
	if slug, ok := categorySlugs[track]; ok {
		return slug
	}
	return strings.ToLower(track)
}

func IsHackathon(track string) bool {
	return strings.Contains(strings.ToLower(track), "hackathon")
}

func EventDetailsFor(track string) EventDetails {
	if IsHackathon(track) {
		return EventDetails{EventType: EventTypeHackathon, Category: CategoryGeneral}
	}

	lower := strings.ToLower(track)
	category := CategoryGeneral
	switch {
	case strings.Contains(lower, "ai") || strings.Contains(lower, "ml"):
		category = CategoryAIML
	case strings.Contains(lower, "cyber"):
		category = CategoryCyber
	case strings.Contains(lower, "full") || strings.Contains(lower, "stack"):
		category = CategoryFullStack
	}
	return EventDetails{EventType: EventTypeBootcamp, Category: category}
}

func DaysFor(track string) []int {
	n := bootcampDays
	if IsHackathon(track) {
		n = hackathonDays
	}
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func ValidDay(track string, day int) bool {
	return day >= 1 && day <= len(DaysFor(track))
}
