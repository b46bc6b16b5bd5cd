package repo

import (
	"context"

	"github.com/aligntogether/taskhub/internal/domain/task/model"
	"github.com/google/uuid"
)

type TodoRepo interface {
	CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error)

	GetTodoByID(ctx context.Context, id uuid.UUID) (model.Todo, error)

	// ListTodosByOwner returns the owner's todos newest-created first.
	// A nil status means no filter.
	ListTodosByOwner(ctx context.Context, owner uuid.UUID, status *model.Status) ([]model.Todo, error)

	UpdateTodo(ctx context.Context, t model.Todo) (model.Todo, error)

	DeleteTodo(ctx context.Context, id uuid.UUID) error
}
