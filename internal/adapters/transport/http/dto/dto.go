package dto

import (
	"time"

	"github.com/aligntogether/taskhub/internal/domain/task/model"
)

type RegisterDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateTodoDTO struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

// UpdateTodoDTO is a partial patch: only non-nil fields are applied.
type UpdateTodoDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type TodoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Email: u.Email}
}

func NewSessionResponse(s model.Session) SessionResponse {
	return SessionResponse{Token: s.Token, User: NewUserResponse(s.User)}
}

func NewTodoResponse(t model.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTodoListResponse(todos []model.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, NewTodoResponse(t))
	}
	return out
}
