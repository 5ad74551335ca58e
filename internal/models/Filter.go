package models

import (
	"regexp"
	"strings"
)

// Segment is a piece of a rendered field; Match marks the parts that
// matched the search query.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

// FilterTeams keeps teams whose name, or any member's name or registration
// number, contains query (case-insensitive). A blank query keeps everything.
func FilterTeams(teams []*TeamRecord, query string) []*TeamRecord {
	if strings.TrimSpace(query) == "" {
		return teams
	}

	q := strings.ToLower(query)
	out := make([]*TeamRecord, 0, len(teams))
	for _, team := range teams {
		if teamMatches(team, q) {
			out = append(out, team)
		}
	}
	return out
}

func teamMatches(team *TeamRecord, q string) bool {
	if strings.Contains(strings.ToLower(team.TeamName), q) {
		return true
	}
	for _, m := range team.Members {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.RegistrationNumber), q) {
			return true
		}
	}
	return false
}

// Highlight splits text into segments around every case-insensitive
// occurrence of query. The query is matched literally.
func Highlight(text, query string) []Segment {
	if text == "" {
		return []Segment{}
	}
	if strings.TrimSpace(query) == "" {
		return []Segment{{Text: text}}
	}

	// invalid bytes read as U+FFFD, the same way FilterTeams lower-cases them
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(strings.ToValidUTF8(query, "\uFFFD")))
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			segments = append(segments, Segment{Text: text[pos:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Match: true})
		pos = m[1]
	}
	if pos < len(text) {
		segments = append(segments, Segment{Text: text[pos:]})
	}
	return segments
}
