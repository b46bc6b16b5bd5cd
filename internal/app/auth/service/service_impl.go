package service

import (
	"context"
	"errors"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	taskErrors "github.com/aligntogether/taskhub/internal/domain/task/errors"
	"github.com/aligntogether/taskhub/internal/domain/task/model"
	"github.com/aligntogether/taskhub/internal/domain/task/repo"
	"github.com/aligntogether/taskhub/internal/domain/task/token"
	"github.com/aligntogether/taskhub/internal/infra/config"
	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type authService struct {
	userRepo  repo.UserRepo
	tokenUtil token.Util
	cfg       *config.Config
	v         *validator.Validate
}

func New(ur repo.UserRepo, tu token.Util, cfg *config.Config, v *validator.Validate) Service {
	return &authService{userRepo: ur, tokenUtil: tu, cfg: cfg, v: v}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, taskErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := argon2id.CreateHash(in.Password+a.cfg.PasswordPepper, argonParams)
	if err != nil {
		return model.User{}, taskErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: passwordHash,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, taskErrors.ErrAlreadyExists) {
			return model.User{}, taskErrors.ErrAlreadyExists
		}
		return model.User{}, taskErrors.WrapInternal(err, "Register")
	}

	return user, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.Session, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, taskErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, taskErrors.ErrNotFound):
		// Unknown email and wrong password are indistinguishable to the caller.
		return model.Session{}, taskErrors.ErrInvalidCredentials
	case err != nil:
		return model.Session{}, taskErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password+a.cfg.PasswordPepper, user.PasswordHash)
	if err != nil {
		return model.Session{}, taskErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.Session{}, taskErrors.ErrInvalidCredentials
	}

	return a.openSession(user)
}

func (a *authService) Verify(ctx context.Context, rawToken string) (model.User, error) {
	claims, err := a.tokenUtil.Validate(rawToken)
	if err != nil {
		return model.User{}, taskErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.User{}, taskErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, taskErrors.ErrNotFound):
		return model.User{}, taskErrors.NewNotFound("user")
	case err != nil:
		return model.User{}, taskErrors.WrapInternal(err, "Verify")
	}

	return user, nil
}

func (a *authService) Refresh(ctx context.Context, userID uuid.UUID) (model.Session, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, taskErrors.ErrNotFound):
		return model.Session{}, taskErrors.NewNotFound("user")
	case err != nil:
		return model.Session{}, taskErrors.WrapInternal(err, "Refresh")
	}

	return a.openSession(user)
}

func (a *authService) openSession(user model.User) (model.Session, error) {
	signed, exp, err := a.tokenUtil.Generate(user.ID)
	if err != nil {
		return model.Session{}, taskErrors.WrapInternal(err, "Generate")
	}
	return model.Session{Token: signed, ExpiresAt: exp, User: user}, nil
}
