package monitor

import "time"

type Status struct {
	Store          bool      `json:"store"`
	ReminderWorker bool      `json:"reminder_worker"`
	ActiveFocus    int       `json:"active_focus_sessions"`
	LastCheck      time.Time `json:"last_check"`
}
