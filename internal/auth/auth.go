package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTypeBearer = "bearer"

// Claims carries the user email as the registered subject.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrInvalidToken covers every token failure: bad signature, wrong
// algorithm, expiry, malformed input or a missing subject.
var ErrInvalidToken = errors.New("invalid token")
