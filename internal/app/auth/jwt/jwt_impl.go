package jwt

import (
	"time"

	taskErrors "github.com/aligntogether/taskhub/internal/domain/task/errors"
	"github.com/aligntogether/taskhub/internal/domain/task/token"
	"github.com/aligntogether/taskhub/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenUtilImpl struct {
	secret   []byte
	tokenTTL time.Duration
	issuer   string
}

func NewTokenUtil(cfg *config.Config) (*TokenUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, taskErrors.NewInvalidArgument("signing secret is empty")
	}
	return &TokenUtilImpl{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		issuer:   cfg.JWTIssuer,
	}, nil
}

func (t *TokenUtilImpl) Generate(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()

	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, taskErrors.WrapInternal(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (t *TokenUtilImpl) Validate(raw string) (token.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &token.Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, taskErrors.ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !parsed.Valid {
		return token.Claims{}, taskErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*token.Claims)
	if !ok {
		return token.Claims{}, taskErrors.ErrInvalidToken
	}

	if t.issuer != "" && claims.Issuer != t.issuer {
		return token.Claims{}, taskErrors.ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return token.Claims{}, taskErrors.ErrInvalidToken
	}

	return *claims, nil
}
