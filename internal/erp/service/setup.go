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
	ErrSetupAlready   = errors.New("system already set up")
	ErrSetupConflict  = errors.New("concurrent setup detected")
	ErrSetupData      = errors.New("invalid setup data")
	ErrDuplicateEmail = errors.New("email already registered")
)

// SetupService owns the first-run flow: before any admin exists the system
// only answers status probes and a single setup call; once an admin, the
// tenant company, and site settings all exist the setup endpoint shuts.
type SetupService struct {
	Store store.Store
}

// Status derives setup completeness from the records themselves. The
// persisted setup_status row only contributes the step counter; an admin
// plus tenant company plus site settings is what actually completes setup,
// so a half-finished or tampered flag can never lock the system open or
// shut incorrectly.
func (s *SetupService) Status(ctx context.Context) (domain.SetupStatus, error) {
	hasAdmin, err := s.Store.Users().HasAdmin(ctx)
	if err != nil {
		return domain.SetupStatus{}, err
	}

	hasTenant := true
	if _, err := s.Store.Companies().GetTenantCompany(ctx); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.SetupStatus{}, err
		}
		hasTenant = false
	}

	hasSettings := true
	if _, err := s.Store.SiteSettings().GetSiteSettings(ctx); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.SetupStatus{}, err
		}
		hasSettings = false
	}

	status := domain.SetupStatus{
		Completed: hasAdmin && hasTenant && hasSettings,
	}

	persisted, err := s.Store.SetupStatus().GetSetupStatus(ctx)
	switch {
	case err == nil:
		status.Step = persisted.Step
	case errors.Is(err, store.ErrNotFound):
		// no row yet, step stays 0
	default:
		return domain.SetupStatus{}, err
	}

	if status.Completed {
		status.Step = domain.SetupStepDone
	}
	return status, nil
}

// PerformSetup creates the admin user, the tenant company, and the site
// settings in one transaction. Either everything lands or nothing does.
func (s *SetupService) PerformSetup(ctx context.Context, req domain.SetupData) (domain.SetupStatus, error) {
	l := slogx.FromContext(ctx)

	status, err := s.Status(ctx)
	if err != nil {
		return domain.SetupStatus{}, err
	}
	if status.Completed {
		l.Warn("setup attempted on already-configured system")
		return domain.SetupStatus{}, ErrSetupAlready
	}

	if err := validateSetupData(&req); err != nil {
		return domain.SetupStatus{}, err
	}

	passHash, err := cryptox.HashPassword(req.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.SetupStatus{}, err
	}

	now := time.Now().UTC()
	adminID := idx.New().String()
	companyID := idx.New().String()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Admin user. The unique email index makes exactly one of any
		// concurrent setup attempts win.
		err := tx.Users().CreateUser(ctx, domain.User{
			ID:           adminID,
			Name:         req.AdminName,
			Email:        req.AdminEmail,
			PasswordHash: passHash,
			Role:         domain.RoleAdmin,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return err
		}

		// 2. Tenant company. The partial unique index on the tenant flag
		// rejects a second one.
		err = tx.Companies().CreateCompany(ctx, domain.Company{
			ID:        companyID,
			Name:      req.CompanyName,
			Document:  req.CompanyDocument,
			Address:   req.CompanyAddress,
			Phone:     req.CompanyPhone,
			Email:     req.CompanyEmail,
			Website:   req.CompanyWebsite,
			Tenant:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrSetupConflict
			}
			return err
		}

		// 3. Site settings with branding defaults.
		err = tx.SiteSettings().UpsertSiteSettings(ctx, domain.SiteSettings{
			SiteTitle:       req.SiteTitle,
			SiteDescription: req.SiteDescription,
			PrimaryColor:    req.PrimaryColor,
			SecondaryColor:  req.SecondaryColor,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}

		// 4. Mark progress. Informational only; Status re-derives.
		return tx.SetupStatus().UpsertSetupStatus(ctx, domain.SetupStatus{
			Completed: true,
			Step:      domain.SetupStepDone,
		})
	})
	if err != nil {
		return domain.SetupStatus{}, err
	}

	l.Info("system setup completed",
		slog.String("admin_user_id", adminID),
		slog.String("company_id", companyID),
	)
	return domain.SetupStatus{Completed: true, Step: domain.SetupStepDone}, nil
}

// validateSetupData normalizes and checks the request in place.
func validateSetupData(req *domain.SetupData) error {
	req.AdminName = strings.TrimSpace(req.AdminName)
	req.AdminEmail = strings.ToLower(strings.TrimSpace(req.AdminEmail))
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.SiteTitle = strings.TrimSpace(req.SiteTitle)

	switch {
	case req.AdminName == "":
		return fmt.Errorf("%w: admin name is required", ErrSetupData)
	case req.AdminEmail == "" || !strings.Contains(req.AdminEmail, "@"):
		return fmt.Errorf("%w: a valid admin email is required", ErrSetupData)
	case len(req.AdminPassword) < 6:
		return fmt.Errorf("%w: admin password must be at least 6 characters", ErrSetupData)
	case req.CompanyName == "":
		return fmt.Errorf("%w: company name is required", ErrSetupData)
	case req.SiteTitle == "":
		return fmt.Errorf("%w: site title is required", ErrSetupData)
	}

	if req.PrimaryColor == "" {
		req.PrimaryColor = domain.DefaultPrimaryColor
	}
	if req.SecondaryColor == "" {
		req.SecondaryColor = domain.DefaultSecondaryColor
	}
	return nil
}
