package models

import (
	"errors"
	"strconv"
	"sync"
)

// NotSpecified is what the backend puts in empty registration slots.
const NotSpecified = "Not specified"

var ErrUnknownParticipant = errors.New("unknown registration number")

type RosterEntry struct {
	RegistrationNumber string `json:"regno"`
	DisplayName        string `json:"name"`
	TeamName           string `json:"team_name"`
	Selected           bool   `json:"selected"`
}

// Participants lists the leader and both members that carry a usable
// registration number.
func (t TeamMember) Participants() []RosterEntry {
	slots := [][2]string{
		{t.RegLeader, t.TeamLeader},
		{t.RegMember1, t.TeamMember1},
		{t.RegMember2, t.TeamMember2},
	}
	out := make([]RosterEntry, 0, len(slots))
	for _, s := range slots {
		if s[0] == "" || s[0] == NotSpecified {
			continue
		}
		out = append(out, RosterEntry{RegistrationNumber: s[0], DisplayName: s[1], TeamName: t.TeamName})
	}
	return out
}

// RosterSheet is the checkbox state of one attendance-marking session.
type RosterSheet struct {
	Mutex   sync.RWMutex
	track   string
	day     int
	teams   []TeamMember
	entries []*RosterEntry
	index   map[string]*RosterEntry
}

func NewRosterSheet(track string, day int, teams []TeamMember) *RosterSheet {
	s := &RosterSheet{track: track, day: day}
	s.load(teams)
	return s
}

// load rebuilds entries from teams. A registration number listed twice keeps
// its first position and takes the later display name.
func (s *RosterSheet) load(teams []TeamMember) {
	s.teams = teams
	s.entries = make([]*RosterEntry, 0)
	s.index = make(map[string]*RosterEntry)
	for _, team := range teams {
		for _, p := range team.Participants() {
			if existing, ok := s.index[p.RegistrationNumber]; ok {
				existing.DisplayName = p.DisplayName
				continue
			}
			entry := p
			s.entries = append(s.entries, &entry)
			s.index[entry.RegistrationNumber] = &entry
		}
	}
}

func (s *RosterSheet) Reload(teams []TeamMember) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.load(teams)
}

func (s *RosterSheet) Track() string { return s.track }
func (s *RosterSheet) Day() int      { return s.day }

func (s *RosterSheet) Teams() []TeamMember {
	s.Mutex.RLock()
	defer s.Mutex.RUnlock()
	out := make([]TeamMember, len(s.teams))
	copy(out, s.teams)
	return out
}

// Toggle flips the selection for regNo and returns the new state.
func (s *RosterSheet) Toggle(regNo string) (bool, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	entry, ok := s.index[regNo]
	if !ok {
		return false, ErrUnknownParticipant
	}
	entry.Selected = !entry.Selected
	return entry.Selected, nil
}

func (s *RosterSheet) Entries() []RosterEntry {
	s.Mutex.RLock()
	defer s.Mutex.RUnlock()
	out := make([]RosterEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

func (s *RosterSheet) SelectedCount() int {
	s.Mutex.RLock()
	defer s.Mutex.RUnlock()
	n := 0
	for _, e := range s.entries {
		if e.Selected {
			n++
		}
	}
	return n
}

// Records builds one attendance record per selected entry.
func (s *RosterSheet) Records() []AttendanceRecord {
	s.Mutex.RLock()
	defer s.Mutex.RUnlock()

	details := EventDetailsFor(s.track)
	day := strconv.Itoa(s.day)
	records := make([]AttendanceRecord, 0)
	for _, e := range s.entries {
		if !e.Selected {
			continue
		}
		records = append(records, AttendanceRecord{
			RegNo:     e.RegistrationNumber,
			Name:      e.DisplayName,
			Day:       day,
			EventType: details.EventType,
			Category:  details.Category,
		})
	}
	return records
}

// Reset clears every selection.
func (s *RosterSheet) Reset() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	for _, e := range s.entries {
		e.Selected = false
	}
}
