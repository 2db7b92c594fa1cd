package transport

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskCreateRequest struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	Reminder     bool   `json:"reminder"`
	ReminderTime int64  `json:"reminderTime"`
}

// TaskPatchRequest mirrors the mutable task fields; absent fields are left
// untouched.
type TaskPatchRequest struct {
	Title        *string `json:"title"`
	Category     *string `json:"category"`
	Priority     *string `json:"priority"`
	Completed    *bool   `json:"completed"`
	Reminder     *bool   `json:"reminder"`
	ReminderTime *int64  `json:"reminderTime"`
}

type SubtaskCreateRequest struct {
	Text string `json:"text"`
}
