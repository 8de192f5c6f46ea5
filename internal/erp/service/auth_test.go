package service

import (
	"context"
	"testing"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	issuer, err := jwtx.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), "erp-test", 0)
	require.NoError(t, err)
	return &AuthService{Store: st, Issuer: issuer}
}

func seedAdmin(t *testing.T, st store.Store) {
	t.Helper()

	setup := &SetupService{Store: st}
	_, err := setup.PerformSetup(context.Background(), validSetupData())
	require.NoError(t, err)
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := newTestAuth(t, st)

	result, err := svc.Login(ctx, "maria@example.com", "correct-horse-battery")
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", result.Username)
	require.Equal(t, "ADMIN", result.Role)

	claims, err := svc.Issuer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", claims.Subject)
	require.Equal(t, "ADMIN", claims.Role)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := newTestAuth(t, st)

	_, err := svc.Login(ctx, " Maria@Example.COM ", "correct-horse-battery")
	require.NoError(t, err)
}

func TestLoginFailureModesAreUniform(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := newTestAuth(t, st)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "maria@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated user", func(t *testing.T) {
		users := &UserService{Store: st}
		created, err := users.CreateUser(ctx, CreateUserRequest{
			Name:     "Disabled",
			Email:    "disabled@example.com",
			Password: "disabled-pass-1",
			Role:     "USER",
		})
		require.NoError(t, err)

		inactive := false
		_, err = users.UpdateUser(ctx, created.ID, UpdateUserRequest{Active: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "disabled@example.com", "disabled-pass-1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginTokenCarriesRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := newTestAuth(t, st)

	users := &UserService{Store: st}
	_, err := users.CreateUser(ctx, CreateUserRequest{
		Name:     "Plain User",
		Email:    "user@example.com",
		Password: "user-pass-123",
		Role:     "USER",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "user@example.com", "user-pass-123")
	require.NoError(t, err)
	require.Equal(t, "USER", result.Role)

	claims, err := svc.Issuer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser.String(), claims.Role)
}
