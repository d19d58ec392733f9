package store

import "time"

// Task is one row of an owner's task list. ID is the internal storage
// identity; Number is the small reusable handle users type in commands.
// Optional fields use the empty string for "not set".
type Task struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	Tag          string    `json:"tag"`
	Project      string    `json:"project"`
	PriorityCode string    `json:"priority_code"`
	DueCode      string    `json:"due_code"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}
