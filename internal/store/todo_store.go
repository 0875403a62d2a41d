package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/todoist/internal/model"
)

// ListTodos returns every todo in the collection in storage order.
func (s *SQLiteStore) ListTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, title, completed, description, created_at, updated_at FROM todos ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

// GetTodoByID retrieves a single todo. Returns model.ErrNotFound when no
// row exists for id.
func (s *SQLiteStore) GetTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, title, completed, description, created_at, updated_at FROM todos WHERE id = ?",
		id,
	)

	todo, err := scanTodoRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}

	return &todo, nil
}

// InsertTodo persists a new todo and returns it with its assigned id.
func (s *SQLiteStore) InsertTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (title, completed, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		todo.Title, boolToInt(todo.Completed), todo.Description,
		todo.CreatedAt.UTC(), todo.UpdatedAt.UTC(),
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading inserted todo id: %w", err)
	}
	todo.ID = id

	return todo, nil
}

// UpdateTodoByID applies the non-nil fields of patch to the row with the
// given id and stamps updated_at. Returns the number of affected rows;
// zero means no such todo exists.
func (s *SQLiteStore) UpdateTodoByID(
	ctx context.Context,
	id int64,
	patch model.TodoPatch,
) (int64, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{patch.UpdatedAt.UTC()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*patch.Completed))
	}
	args = append(args, id)

	query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("updating todo %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows for todo %d: %w", id, err)
	}
	return affected, nil
}

// DeleteTodoByID removes the row with the given id. Returns the number of
// affected rows; zero means nothing was removed.
func (s *SQLiteStore) DeleteTodoByID(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting todo %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows for todo %d: %w", id, err)
	}
	return affected, nil
}

// scanTodo scans a todo row from a sqlx.Rows result set.
func scanTodo(rows *sqlx.Rows) (model.Todo, error) {
	var (
		todo      model.Todo
		completed int
		createdAt time.Time
		updatedAt time.Time
	)

	err := rows.Scan(
		&todo.ID, &todo.Title, &completed, &todo.Description,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}

	todo.Completed = completed != 0
	todo.CreatedAt = createdAt
	todo.UpdatedAt = updatedAt

	return todo, nil
}

// scanTodoRow scans a single todo row from a sqlx.Row.
func scanTodoRow(row *sqlx.Row) (model.Todo, error) {
	var (
		todo      model.Todo
		completed int
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&todo.ID, &todo.Title, &completed, &todo.Description,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Todo{}, err
	}

	todo.Completed = completed != 0
	todo.CreatedAt = createdAt
	todo.UpdatedAt = updatedAt

	return todo, nil
}
