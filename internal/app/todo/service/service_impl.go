package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	taskErrors "github.com/aligntogether/taskhub/internal/domain/task/errors"
	"github.com/aligntogether/taskhub/internal/domain/task/model"
	"github.com/aligntogether/taskhub/internal/domain/task/repo"
	"github.com/google/uuid"
)

type todoService struct {
	todoRepo repo.TodoRepo
}

func New(tr repo.TodoRepo) Service {
	return &todoService{todoRepo: tr}
}

func (s *todoService) List(ctx context.Context, owner uuid.UUID, statusFilter string) ([]model.Todo, error) {
	var status *model.Status
	if statusFilter != "" && statusFilter != model.StatusFilterAll {
		parsed, ok := model.ParseStatus(statusFilter)
		if !ok {
			return nil, taskErrors.NewInvalidArgument("unknown status filter: " + statusFilter)
		}
		status = &parsed
	}

	todos, err := s.todoRepo.ListTodosByOwner(ctx, owner, status)
	if err != nil {
		return nil, taskErrors.WrapInternal(err, "List")
	}
	return todos, nil
}

func (s *todoService) Create(ctx context.Context, owner uuid.UUID, in dto.CreateTodoDTO) (model.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Todo{}, taskErrors.NewInvalidArgument("title is required")
	}

	todo := model.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: in.Description,
		Status:      model.StatusPending,
		UserID:      owner,
	}

	created, err := s.todoRepo.CreateTodo(ctx, todo)
	if err != nil {
		return model.Todo{}, taskErrors.WrapInternal(err, "Create")
	}
	return created, nil
}

func (s *todoService) Update(ctx context.Context, id, owner uuid.UUID, in dto.UpdateTodoDTO) (model.Todo, error) {
	todo, err := s.fetchOwned(ctx, id, owner)
	if err != nil {
		return model.Todo{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return model.Todo{}, taskErrors.NewInvalidArgument("title is required")
		}
		todo.Title = title
	}
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if in.Status != nil {
		status, ok := model.ParseStatus(*in.Status)
		if !ok {
			return model.Todo{}, taskErrors.NewInvalidArgument("unknown status: " + *in.Status)
		}
		todo.Status = status
	}

	updated, err := s.todoRepo.UpdateTodo(ctx, todo)
	if err != nil {
		return model.Todo{}, taskErrors.WrapInternal(err, "Update")
	}
	return updated, nil
}

func (s *todoService) Remove(ctx context.Context, id, owner uuid.UUID) error {
	if _, err := s.fetchOwned(ctx, id, owner); err != nil {
		return err
	}

	if err := s.todoRepo.DeleteTodo(ctx, id); err != nil {
		if errors.Is(err, taskErrors.ErrNotFound) {
			return taskErrors.NewNotFound("todo")
		}
		return taskErrors.WrapInternal(err, "Remove")
	}
	return nil
}

// fetchOwned loads a todo and enforces ownership. Absence is reported
// before authorship: NotFound wins over Forbidden.
func (s *todoService) fetchOwned(ctx context.Context, id, owner uuid.UUID) (model.Todo, error) {
	todo, err := s.todoRepo.GetTodoByID(ctx, id)
	switch {
	case errors.Is(err, taskErrors.ErrNotFound):
		return model.Todo{}, taskErrors.NewNotFound("todo")
	case err != nil:
		return model.Todo{}, taskErrors.WrapInternal(err, "GetTodoByID")
	}

	if todo.UserID != owner {
		return model.Todo{}, taskErrors.NewForbidden("not the owner")
	}
	return todo, nil
}
