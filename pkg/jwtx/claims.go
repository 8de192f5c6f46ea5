// Package jwtx issues and verifies the self-contained HS512 bearer tokens
// used for authentication. Tokens carry the subject (the user's email) and
// their role; nothing is persisted server-side.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the default access token lifetime.
const DefaultTTL = 24 * time.Hour

// MinSecretBytes is the minimum signing secret length. HS512 wants at least
// a 256-bit key; anything shorter is refused outright.
const MinSecretBytes = 32

// Claims are the access-token claims. Additive changes only, so older
// tokens keep verifying across deploys.
type Claims struct {
	jwt.RegisteredClaims

	// Role of the authenticated user ("ADMIN", "USER").
	Role string `json:"role,omitempty"`
}

// NewClaims builds minimally-correct claims for a subject/role pair.
func NewClaims(subject, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
}
