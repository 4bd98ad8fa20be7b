package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims of the bearer tokens accepted by the API.
// Tokens are issued by the auth service; this API only verifies them.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
