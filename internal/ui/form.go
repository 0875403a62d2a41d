package ui

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
}

func buildTodoForm(fb *formBindings, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&fb.title).
				Validate(validateTitleField),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&fb.description),
		),
	).WithWidth(width)
}

func validateTitleField(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(s) > 50 {
		return errors.New("title must not exceed 50 characters")
	}
	return nil
}
