package service

import (
	"context"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	"github.com/aligntogether/taskhub/internal/domain/task/model"
	"github.com/google/uuid"
)

type Service interface {
	// List returns the owner's todos newest-created first. An empty filter
	// or "All" means no filter; an unknown value is an invalid argument.
	List(ctx context.Context, owner uuid.UUID, statusFilter string) ([]model.Todo, error)

	Create(ctx context.Context, owner uuid.UUID, in dto.CreateTodoDTO) (model.Todo, error)

	Update(ctx context.Context, id, owner uuid.UUID, in dto.UpdateTodoDTO) (model.Todo, error)

	Remove(ctx context.Context, id, owner uuid.UUID) error
}
