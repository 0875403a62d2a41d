package todo

import (
	"context"

	"github.com/nhle/todoist/internal/model"
)

// Repository is the durable collection the service validates and
// orchestrates against. Any by-id store satisfies it; the production
// implementation is store.SQLiteStore.
type Repository interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	GetTodoByID(ctx context.Context, id int64) (*model.Todo, error)
	InsertTodo(ctx context.Context, todo model.Todo) (model.Todo, error)
	UpdateTodoByID(ctx context.Context, id int64, patch model.TodoPatch) (int64, error)
	DeleteTodoByID(ctx context.Context, id int64) (int64, error)
}
