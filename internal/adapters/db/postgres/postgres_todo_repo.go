package postgres

import (
	"context"
	"errors"

	taskErrors "github.com/aligntogether/taskhub/internal/domain/task/errors"
	"github.com/aligntogether/taskhub/internal/domain/task/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresTodoRepo struct {
	db *gorm.DB
}

func NewPostgresTodoRepo(db *gorm.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

func (p *PostgresTodoRepo) CreateTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	res := p.db.WithContext(ctx).Create(&todo)
	if err := res.Error; err != nil {
		return model.Todo{}, taskErrors.WrapInternal(err, "CreateTodo")
	}
	return todo, nil
}

func (p *PostgresTodoRepo) GetTodoByID(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	var t model.Todo
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Todo{}, taskErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Todo{}, taskErrors.WrapInternal(err, "GetTodoByID")
	}

	return t, nil
}

func (p *PostgresTodoRepo) ListTodosByOwner(ctx context.Context, owner uuid.UUID, status *model.Status) ([]model.Todo, error) {
	q := p.db.WithContext(ctx).Where("user_id = ?", owner)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var todos []model.Todo
	res := q.Order("created_at DESC").Find(&todos)
	if err := res.Error; err != nil {
		return nil, taskErrors.WrapInternal(err, "ListTodosByOwner")
	}

	return todos, nil
}

func (p *PostgresTodoRepo) UpdateTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	// Save writes every column: concurrent updates to the same record
	// resolve as last-write-wins at the storage layer.
	res := p.db.WithContext(ctx).Save(&todo)
	if err := res.Error; err != nil {
		return model.Todo{}, taskErrors.WrapInternal(err, "UpdateTodo")
	}
	return todo, nil
}

func (p *PostgresTodoRepo) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&model.Todo{}, "id = ?", id)
	if err := res.Error; err != nil {
		return taskErrors.WrapInternal(err, "DeleteTodo")
	}
	if res.RowsAffected == 0 {
		return taskErrors.ErrNotFound
	}

	return nil
}
