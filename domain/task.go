package domain

import "time"

// Priority is the fixed three-level task priority.
type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityMid  Priority = "mid"
	PriorityHigh Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMid, PriorityHigh:
		return true
	}
	return false
}

// Category is the fixed task category set. The stored values match the data
// written by earlier releases so existing records keep deserializing.
type Category string

const (
	CategoryWork     Category = "Trabajo"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Compras"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping:
		return true
	}
	return false
}

// Subtask is a checklist entry owned by a single task.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task represents a user-owned activity item. Timestamps are Unix
// milliseconds, matching the persisted format.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     Category  `json:"category"`
	Priority     Priority  `json:"priority"`
	Completed    bool      `json:"completed"`
	Subtasks     []Subtask `json:"subtasks"`
	Reminder     bool      `json:"reminder"`
	ReminderTime int64     `json:"reminderTime,omitempty"`
	CreatedAt    int64     `json:"createdAt"`
}

// ReminderDue reports whether the task's reminder fired within the trailing
// window ending at reference. Completed tasks never fire.
func (t *Task) ReminderDue(reference time.Time, window time.Duration) bool {
	if t == nil || !t.Reminder || t.Completed || t.ReminderTime == 0 {
		return false
	}
	now := reference.UnixMilli()
	return t.ReminderTime <= now && t.ReminderTime > now-window.Milliseconds()
}

func (t *Task) FindSubtask(id string) *Subtask {
	if t == nil {
		return nil
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return &t.Subtasks[i]
		}
	}
	return nil
}

// Stats aggregates per-user counters. Derived, never authoritative on its own.
type Stats struct {
	CompletedCount int `json:"completedCount"`
	StreakDays     int `json:"streakDays"`
	FocusSessions  int `json:"focusSessions"`
}
