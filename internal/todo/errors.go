package todo

import "errors"

// Validation errors carry the exact messages the API contract exposes.
var (
	ErrTitleRequired = errors.New("Title is required")
	ErrTitleTooLong  = errors.New("Title must not exceed 50 characters")
)
