package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by a session token. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// Util signs and verifies session tokens. Tokens are stateless: there is
// no revocation list, a token stays valid until its expiry.
type Util interface {
	Generate(userID uuid.UUID) (token string, exp time.Time, err error)

	Validate(raw string) (Claims, error)
}
