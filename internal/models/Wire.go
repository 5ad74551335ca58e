package models

// Envelope carries the status fields every backend response shares.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (e *Envelope) Status() *Envelope {
	return e
}

type TeamMember struct {
	TeamName    string `json:"team_name"`
	TeamLeader  string `json:"team_leader"`
	TeamMember1 string `json:"team_member1"`
	TeamMember2 string `json:"team_member2"`
	RegLeader   string `json:"reg_leader"`
	RegMember1  string `json:"reg_member1"`
	RegMember2  string `json:"reg_member2"`
}

type TeamsResponse struct {
	Envelope
	Category string       `json:"category"`
	Count    int          `json:"count"`
	Teams    []TeamMember `json:"teams"`
	Sources  []string     `json:"sources,omitempty"`
}

type AttendanceRecord struct {
	RegNo     string `json:"regno"`
	Name      string `json:"name"`
	Day       string `json:"day"`
	EventType string `json:"event_type"`
	Category  string `json:"category,omitempty"`
}

type AttendanceRequest struct {
	AttendanceRecords []AttendanceRecord `json:"attendance_records"`
}

type AttendanceSummary struct {
	TotalRecords int `json:"total_records"`
	Successful   int `json:"successful"`
	Failed       int `json:"failed"`
}

type DetailedResult struct {
	RegNo  string `json:"regno"`
	Name   string `json:"name"`
	Result any    `json:"result"`
}

type AttendanceResponse struct {
	Envelope
	Summary         AttendanceSummary `json:"summary"`
	DetailedResults []DetailedResult  `json:"detailed_results"`
}

type DashboardResponse struct {
	Envelope
	Category        string          `json:"category"`
	TotalAttendance int             `json:"total_attendance"`
	AttendanceData  []AttendanceRow `json:"attendance_data"`
}

type BarcodeBatch struct {
	Bootcamp string   `json:"bootcamp"`
	Day      int      `json:"day"`
	Barcodes []string `json:"barcodes"`
}
