package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/cryptox"
	"github.com/xingubit/isperp/pkg/jwtx"
	"github.com/xingubit/isperp/pkg/slogx"
)

// ErrInvalidCredentials is returned for every credential failure mode so
// callers cannot distinguish an unknown email from a wrong password or a
// deactivated account. The logs carry the distinction.
var ErrInvalidCredentials = errors.New("invalid_credentials")

type AuthService struct {
	Store  store.Store
	Issuer *jwtx.Issuer
}

// Login verifies the email/password pair and returns a signed token on
// success. The email doubles as the username throughout the system.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("login attempt for unknown email", slog.String("email", email))
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, err
	}

	if !user.Active {
		l.Warn("login attempt for deactivated user", slog.String("user_id", user.ID))
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Warn("login attempt with wrong password", slog.String("user_id", user.ID))
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.Issuer.Issue(user.Email, user.Role.String())
	if err != nil {
		l.Error("failed to issue token", slog.Any("error", err))
		return domain.LoginResult{}, err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return domain.LoginResult{
		Token:    token,
		Username: user.Email,
		Role:     user.Role.String(),
	}, nil
}
