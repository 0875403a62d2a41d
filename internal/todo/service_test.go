package todo_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nhle/todoist/internal/model"
	"github.com/nhle/todoist/internal/todo"
	"github.com/nhle/todoist/tests/testutil"
)

func newTestService(t *testing.T) *todo.Service {
	t.Helper()
	return todo.NewService(testutil.NewTestStore(t))
}

func TestCreateSetsServerOwnedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, todo.CreateInput{Title: "Test Todo", Description: "details"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	if created.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
	if created.Completed {
		t.Fatalf("new todo must not be completed")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", created.CreatedAt, created.UpdatedAt)
	}

	second, err := svc.Create(ctx, todo.CreateInput{Title: "Another"})
	if err != nil {
		t.Fatalf("creating second todo: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("ids must be unique, both got %d", created.ID)
	}
}

func TestCreateAcceptsTitleAtBound(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), todo.CreateInput{
		Title: strings.Repeat("x", 50),
	})
	if err != nil {
		t.Fatalf("a 50-char title is within the bound: %v", err)
	}
	if len(created.Title) != 50 {
		t.Fatalf("title was altered: %d chars", len(created.Title))
	}
}

func TestCreateRejectsOverlongTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, todo.CreateInput{Title: strings.Repeat("x", 51)})
	if !errors.Is(err, todo.ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}
	if got := err.Error(); got != "Title must not exceed 50 characters" {
		t.Fatalf("unexpected message: %q", got)
	}

	todos, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("rejected create must not persist, found %d todos", len(todos))
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc := newTestService(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), todo.CreateInput{Title: title})
		if !errors.Is(err, todo.ErrTitleRequired) {
			t.Fatalf("title %q: expected ErrTitleRequired, got %v", title, err)
		}
	}
}

func TestUpdateRejectsOverlongTitleWithoutSideEffect(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, todo.CreateInput{Title: "keep me"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	long := strings.Repeat("x", 51)
	_, err = svc.Update(ctx, created.ID, todo.UpdateInput{Title: &long})
	if !errors.Is(err, todo.ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("getting todo: %v", err)
	}
	if got.Title != "keep me" || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("rejected update left a side effect: %+v", got)
	}
}

func TestUpdateValidatesTitleBeforeExistence(t *testing.T) {
	svc := newTestService(t)

	long := strings.Repeat("x", 51)
	_, err := svc.Update(context.Background(), 404, todo.UpdateInput{Title: &long})
	if !errors.Is(err, todo.ErrTitleTooLong) {
		t.Fatalf("title rule must win over absence, got %v", err)
	}
}

func TestUpdateMissingLeavesCollectionUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, todo.CreateInput{Title: "only one"}); err != nil {
		t.Fatalf("creating todo: %v", err)
	}
	before, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %v", err)
	}

	title := "new title"
	_, err = svc.Update(ctx, 999, todo.UpdateInput{Title: &title})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("collection changed: before=%+v after=%+v", before, after)
	}
}

func TestUpdatePartialMergePreservesOtherFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, todo.CreateInput{Title: "original", Description: "keep this"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	title := "renamed"
	updated, err := svc.Update(ctx, created.ID, todo.UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("updating todo: %v", err)
	}

	if updated.Title != "renamed" {
		t.Fatalf("title not applied: %q", updated.Title)
	}
	if updated.Description != "keep this" {
		t.Fatalf("unsupplied field changed: %q", updated.Description)
	}
	if updated.Completed != created.Completed {
		t.Fatalf("unsupplied completed flag changed")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt is immutable, changed from %v to %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt went backwards: %v < %v", updated.UpdatedAt, created.UpdatedAt)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("getting todo: %v", err)
	}
	if !reflect.DeepEqual(got, updated) {
		t.Fatalf("update result diverges from stored record:\nupdate: %+v\nget:    %+v", updated, got)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, todo.CreateInput{Title: "round trip", Description: "d"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("getting todo: %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title ||
		got.Description != created.Description || got.Completed != created.Completed {
		t.Fatalf("get diverges from create result:\ncreate: %+v\nget:    %+v", created, got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("timestamps diverge:\ncreate: %+v\nget:    %+v", created, got)
	}
}

func TestGetMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), 404)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, todo.CreateInput{Title: "doomed"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}
	keeper, err := svc.Create(ctx, todo.CreateInput{Title: "keeper"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	removed, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("deleting todo: %v", err)
	}
	if !removed {
		t.Fatalf("expected first delete to remove the record")
	}

	removed, err = svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if removed {
		t.Fatalf("repeat delete must report nothing removed")
	}

	todos, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != keeper.ID {
		t.Fatalf("delete removed the wrong record: %+v", todos)
	}
}

func TestDeleteMissingLeavesCollectionUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, todo.CreateInput{Title: "survivor"}); err != nil {
		t.Fatalf("creating todo: %v", err)
	}
	before, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %v", err)
	}

	removed, err := svc.Delete(ctx, 999)
	if err != nil {
		t.Fatalf("deleting missing todo: %v", err)
	}
	if removed {
		t.Fatalf("deleting a missing id must report nothing removed")
	}

	after, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("collection changed: before=%+v after=%+v", before, after)
	}
}
