package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nhle/todoist/internal/model"
	"github.com/nhle/todoist/internal/store"
	"github.com/nhle/todoist/tests/testutil"
)

func insertTodo(t *testing.T, s *store.SQLiteStore, title string) model.Todo {
	t.Helper()

	now := time.Now().UTC()
	created, err := s.InsertTodo(context.Background(), model.Todo{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("inserting todo: %v", err)
	}
	return created
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := insertTodo(t, s, "first")
	second := insertTodo(t, s, "second")

	if first.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestGetTodoByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetTodoByID(context.Background(), 42)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetTodoByIDRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	created, err := s.InsertTodo(ctx, model.Todo{
		Title:       "buy milk",
		Description: "two liters",
		Completed:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("inserting todo: %v", err)
	}

	got, err := s.GetTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("getting todo: %v", err)
	}
	if got.Title != "buy milk" || got.Description != "two liters" || !got.Completed {
		t.Fatalf("unexpected todo: %+v", got)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps did not round-trip: %+v", got)
	}
}

func TestListTodosOrderedStably(t *testing.T) {
	s := testutil.NewTestStore(t)

	a := insertTodo(t, s, "a")
	b := insertTodo(t, s, "b")
	c := insertTodo(t, s, "c")

	for i := 0; i < 2; i++ {
		todos, err := s.ListTodos(context.Background())
		if err != nil {
			t.Fatalf("listing todos: %v", err)
		}
		if len(todos) != 3 {
			t.Fatalf("expected 3 todos, got %d", len(todos))
		}
		if todos[0].ID != a.ID || todos[1].ID != b.ID || todos[2].ID != c.ID {
			t.Fatalf("unexpected order: %+v", todos)
		}
	}
}

func TestUpdateTodoByIDAppliesOnlySuppliedFields(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created := insertTodo(t, s, "original")

	later := time.Now().UTC().Add(time.Minute)
	completed := true
	affected, err := s.UpdateTodoByID(ctx, created.ID, model.TodoPatch{
		Completed: &completed,
		UpdatedAt: later,
	})
	if err != nil {
		t.Fatalf("updating todo: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	got, err := s.GetTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("getting todo: %v", err)
	}
	if got.Title != "original" {
		t.Fatalf("title changed by unrelated patch: %q", got.Title)
	}
	if !got.Completed {
		t.Fatalf("completed flag not applied")
	}
}

func TestUpdateTodoByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	title := "new title"
	affected, err := s.UpdateTodoByID(context.Background(), 99, model.TodoPatch{
		Title:     &title,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("updating missing todo: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows, got %d", affected)
	}
}

func TestDeleteTodoByIDCounts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created := insertTodo(t, s, "doomed")

	affected, err := s.DeleteTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("deleting todo: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	affected, err = s.DeleteTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("deleting todo again: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows on repeat delete, got %d", affected)
	}
}

func TestInsertRejectsOverlongTitle(t *testing.T) {
	s := testutil.NewTestStore(t)

	now := time.Now().UTC()
	_, err := s.InsertTodo(context.Background(), model.Todo{
		Title:     strings.Repeat("x", 51),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		t.Fatalf("expected the column constraint to reject a 51-char title")
	}
}
