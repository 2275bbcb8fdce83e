package monitor

import "time"

type Status struct {
	Store       bool      `json:"store"`
	Challenges  int       `json:"challenges"`
	Progress    int       `json:"progressRecords"`
	Reflections int       `json:"reflections"`
	LastCheck   time.Time `json:"lastCheck"`
	LastSweep   time.Time `json:"lastSweep,omitempty"`
}
