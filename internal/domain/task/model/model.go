package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a todo item.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"

	// StatusFilterAll is the list-filter sentinel meaning "no filter".
	StatusFilterAll = "All"
)

// ParseStatus validates a raw status string against the known enum.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusCompleted:
		return Status(raw), true
	}
	return "", false
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Todo struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      Status
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session is what a successful login or refresh yields: a signed token
// plus the user it identifies.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
