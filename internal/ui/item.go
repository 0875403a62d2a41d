package ui

import (
	"github.com/nhle/todoist/internal/model"
)

// todoItem adapts a todo for the bubbles list.
type todoItem struct {
	todo model.Todo
}

func (i todoItem) Title() string {
	check := "[ ] "
	if i.todo.Completed {
		check = "[x] "
	}
	return check + i.todo.Title
}

func (i todoItem) Description() string {
	if i.todo.Description == "" {
		return "no description"
	}
	return i.todo.Description
}

func (i todoItem) FilterValue() string {
	return i.todo.Title
}
