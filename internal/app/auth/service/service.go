package service

import (
	"context"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	"github.com/aligntogether/taskhub/internal/domain/task/model"
	"github.com/google/uuid"
)

type Service interface {
	// Register creates a user; it does not open a session, the caller
	// logs in separately.
	Register(ctx context.Context, in dto.RegisterDTO) (model.User, error)

	Login(ctx context.Context, in dto.LoginDTO) (model.Session, error)

	// Verify resolves a raw bearer token to the user it identifies.
	Verify(ctx context.Context, rawToken string) (model.User, error)

	// Refresh issues a fresh token for an already-authenticated user.
	// The previous token stays valid until its own expiry.
	Refresh(ctx context.Context, userID uuid.UUID) (model.Session, error)
}
