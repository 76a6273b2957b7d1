package models

// Distribution maps a member name to per-label annotation counts.
type Distribution map[string]map[string]int

// MemberProgress is the completion count of one project member.
type MemberProgress struct {
	User string `json:"user"`
	Done int    `json:"done"`
}

// Progress is the progress of every member of a project.
type Progress struct {
	Total    int              `json:"total"`
	Progress []MemberProgress `json:"progress"`
}

// MyProgress is the progress of the requesting user.
type MyProgress struct {
	Total     int `json:"total"`
	Remaining int `json:"remaining"`
	Complete  int `json:"complete"`
}
