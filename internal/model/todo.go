package model

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no todo exists for a requested id.
var ErrNotFound = errors.New("todo not found")

// Todo is the task record shared between the server store and client views.
// The server is the sole writer of ID, CreatedAt, and UpdatedAt.
type Todo struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TodoPatch carries the fields of a partial update. A nil field is left
// unchanged by the merge. UpdatedAt is always written.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	UpdatedAt   time.Time
}
