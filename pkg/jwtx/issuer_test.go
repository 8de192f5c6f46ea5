package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef") // 32 bytes

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(testSecret, "isperp", time.Hour)
	require.NoError(t, err)
	return iss
}

func TestNewIssuerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("too-short"), "isperp", time.Hour)
	require.ErrorIs(t, err, ErrShortSecret)
}

func TestNewIssuerDefaultsTTL(t *testing.T) {
	t.Parallel()

	iss, err := NewIssuer(testSecret, "isperp", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultTTL, iss.TTL())
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	token, err := iss.Issue("admin@example.com", "ADMIN")
	require.NoError(t, err)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", claims.Subject)
	require.Equal(t, "ADMIN", claims.Role)
	require.Equal(t, "isperp", claims.Issuer)

	require.False(t, iss.IsExpired(token))
	require.True(t, iss.Validate(token, "admin@example.com"))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	token, err := iss.Issue("admin@example.com", "ADMIN")
	require.NoError(t, err)

	// Flip one character of the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = iss.Verify(tampered)
	require.Error(t, err)
	require.False(t, iss.Validate(tampered, "admin@example.com"))
	require.False(t, iss.IsExpired(tampered))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	token, err := iss.Issue("user@example.com", "USER")
	require.NoError(t, err)

	other, err := iss.Issue("admin@example.com", "ADMIN")
	require.NoError(t, err)

	// Graft the admin payload onto the user token's signature.
	a := strings.Split(token, ".")
	b := strings.Split(other, ".")
	spliced := b[0] + "." + b[1] + "." + a[2]

	_, err = iss.Verify(spliced)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	foreign, err := NewIssuer([]byte("ffffffffffffffffffffffffffffffff"), "isperp", time.Hour)
	require.NoError(t, err)

	token, err := foreign.Issue("admin@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = iss.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	for _, garbage := range []string{"", "abc", "a.b", "a.b.c.d"} {
		_, err := iss.Verify(garbage)
		require.Error(t, err, "input %q", garbage)
	}
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	// Backdate issuance so the token is already past its TTL.
	token, err := iss.issueAt("admin@example.com", "ADMIN", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = iss.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
	require.True(t, iss.IsExpired(token))
	require.False(t, iss.Validate(token, "admin@example.com"))
}

func TestValidateSubjectMismatch(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	token, err := iss.Issue("admin@example.com", "ADMIN")
	require.NoError(t, err)

	require.False(t, iss.Validate(token, "someone@example.com"))
}
