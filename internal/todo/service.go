package todo

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nhle/todoist/internal/model"
)

// maxTitleLen is the inclusive upper bound on todo titles, enforced here
// and by the persisted column width.
const maxTitleLen = 50

// CreateInput carries the caller-supplied fields of a new todo.
type CreateInput struct {
	Title       string
	Description string
}

// UpdateInput carries the fields of a partial update. Nil fields are left
// unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Service owns validation and persistence for the todo collection. It is
// the sole writer of ids and timestamps.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a Service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns every todo in storage order.
func (s *Service) List(ctx context.Context) ([]model.Todo, error) {
	return s.repo.ListTodos(ctx)
}

// Get returns the todo with the given id, or model.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (model.Todo, error) {
	found, err := s.repo.GetTodoByID(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	return *found, nil
}

// Create validates the input, assigns timestamps, and persists a new todo
// with completed=false. Validation failures happen before any persistence
// side effect.
func (s *Service) Create(ctx context.Context, in CreateInput) (model.Todo, error) {
	if err := validateTitle(in.Title); err != nil {
		return model.Todo{}, err
	}

	now := s.now().UTC()
	created, err := s.repo.InsertTodo(ctx, model.Todo{
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("creating todo: %w", err)
	}
	return created, nil
}

// Update merges the supplied fields into the existing record and refreshes
// updated_at. The title rule is checked before existence, so an over-long
// title against a missing id reports the validation failure, not the
// absence. Returns model.ErrNotFound when no record exists for id.
//
// The returned todo is re-read from storage after the write rather than
// assembled from the local merge, so it reflects exactly what is durably
// stored even when concurrent updates interleave.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (model.Todo, error) {
	if in.Title != nil {
		if utf8.RuneCountInString(*in.Title) > maxTitleLen {
			return model.Todo{}, ErrTitleTooLong
		}
	}

	affected, err := s.repo.UpdateTodoByID(ctx, id, model.TodoPatch{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("updating todo %d: %w", id, err)
	}
	if affected == 0 {
		return model.Todo{}, model.ErrNotFound
	}

	fresh, err := s.repo.GetTodoByID(ctx, id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("rereading todo %d after update: %w", id, err)
	}
	return *fresh, nil
}

// Delete removes the record if present. Returns true iff a record was
// actually removed; deleting a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := s.repo.DeleteTodoByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return affected > 0, nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}
