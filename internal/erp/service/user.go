package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/cryptox"
	"github.com/xingubit/isperp/pkg/idx"
	"github.com/xingubit/isperp/pkg/slogx"
)

var (
	ErrUserData   = errors.New("invalid user data")
	ErrEmailTaken = errors.New("email already registered")

	// ErrLastAdmin guards the only remaining admin account. Removing or
	// demoting it would leave the system without anyone able to manage it.
	ErrLastAdmin = errors.New("cannot remove the last admin")
)

type UserService struct {
	Store store.Store
}

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	l := slogx.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	switch {
	case req.Name == "":
		return domain.User{}, fmt.Errorf("%w: name is required", ErrUserData)
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return domain.User{}, fmt.Errorf("%w: a valid email is required", ErrUserData)
	case len(req.Password) < 6:
		return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", ErrUserData)
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %s", ErrUserData, err)
	}

	passHash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	l.Info("user created", slog.String("user_id", u.ID), slog.String("role", role.String()))
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

type UpdateUserRequest struct {
	Name   string
	Email  string
	Role   string
	Active *bool
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (domain.User, error) {
	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(req.Name); name != "" {
			u.Name = name
		}
		if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
			if !strings.Contains(email, "@") {
				return fmt.Errorf("%w: a valid email is required", ErrUserData)
			}
			u.Email = email
		}
		if req.Role != "" {
			role, err := domain.ParseRole(req.Role)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrUserData, err)
			}
			if u.Role == domain.RoleAdmin && role != domain.RoleAdmin {
				if err := s.guardLastAdmin(ctx, tx, u.ID); err != nil {
					return err
				}
			}
			u.Role = role
		}
		if req.Active != nil {
			if u.Role == domain.RoleAdmin && u.Active && !*req.Active {
				if err := s.guardLastAdmin(ctx, tx, u.ID); err != nil {
					return err
				}
			}
			u.Active = *req.Active
		}
		u.UpdatedAt = time.Now().UTC()

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		out = u
		return nil
	})
	return out, err
}

func (s *UserService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrUserData)
	}
	passHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		u.PasswordHash = passHash
		u.UpdatedAt = time.Now().UTC()
		return tx.Users().UpdateUser(ctx, u)
	})
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if u.Role == domain.RoleAdmin && u.Active {
			if err := s.guardLastAdmin(ctx, tx, u.ID); err != nil {
				return err
			}
		}
		return tx.Users().DeleteUser(ctx, id)
	})
	if err == nil {
		l.Info("user deleted", slog.String("user_id", id))
	}
	return err
}

// guardLastAdmin fails with ErrLastAdmin when no other active admin exists.
func (s *UserService) guardLastAdmin(ctx context.Context, tx store.Tx, excludeID string) error {
	users, err := tx.Users().ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != excludeID && u.Role == domain.RoleAdmin && u.Active {
			return nil
		}
	}
	return ErrLastAdmin
}
