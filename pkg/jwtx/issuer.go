package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrShortSecret = errors.New("jwtx: signing secret shorter than 256 bits")
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
)

// Issuer signs and verifies tokens with a single symmetric HS512 key.
// It is stateless and safe for concurrent use.
//
// Expiry is checked against the wall clock with zero leeway; deployments are
// expected to run NTP rather than rely on verification slack.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewIssuer builds an Issuer. The secret must be at least MinSecretBytes
// long; ttl falls back to DefaultTTL when zero.
func NewIssuer(secret []byte, issuer string, ttl time.Duration) (*Issuer, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrShortSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for subject with the given role, valid from now until
// now+ttl.
func (i *Issuer) Issue(subject, role string) (string, error) {
	return i.issueAt(subject, role, time.Now())
}

func (i *Issuer) issueAt(subject, role string, now time.Time) (string, error) {
	claims := NewClaims(subject, role, i.issuer, i.ttl, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token: HS512 signature with this issuer's
// key, well-formed payload, and not past expiry.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	)
	if err != nil {
		return Claims{}, mapError(err)
	}
	return claims, nil
}

// IsExpired reports whether a correctly signed token is past its expiry.
// Tokens that fail verification for any other reason report false; Verify is
// the authority on those.
func (i *Issuer) IsExpired(tokenString string) bool {
	_, err := i.Verify(tokenString)
	return errors.Is(err, ErrExpired)
}

// Validate reports whether the token verifies, is not expired, and was
// issued to expectedSubject.
func (i *Issuer) Validate(tokenString, expectedSubject string) bool {
	claims, err := i.Verify(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
