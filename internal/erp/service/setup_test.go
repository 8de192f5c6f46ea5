package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/internal/erp/store/drivers/sqlite"
	"github.com/xingubit/isperp/pkg/idx"
	"github.com/stretchr/testify/require"
)

func validSetupData() domain.SetupData {
	return domain.SetupData{
		AdminName:     "Maria Silva",
		AdminEmail:    "maria@example.com",
		AdminPassword: "correct-horse-battery",
		CompanyName:   "Acme Ltda",
		SiteTitle:     "Acme ERP",
	}
}

func TestSetupStatusEmptySystem(t *testing.T) {
	ctx := context.Background()
	svc := &SetupService{Store: newTestStore(t)}

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.False(t, status.Completed)
	require.Zero(t, status.Step)
}

func TestPerformSetupCreatesEverything(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SetupService{Store: st}

	status, err := svc.PerformSetup(ctx, validSetupData())
	require.NoError(t, err)
	require.True(t, status.Completed)
	require.Equal(t, domain.SetupStepDone, status.Step)

	admin, err := st.Users().GetUserByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.True(t, admin.Active)
	require.NotEqual(t, "correct-horse-battery", admin.PasswordHash)

	company, err := st.Companies().GetTenantCompany(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acme Ltda", company.Name)
	require.True(t, company.Tenant)

	settings, err := st.SiteSettings().GetSiteSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acme ERP", settings.SiteTitle)
	require.Equal(t, domain.DefaultPrimaryColor, settings.PrimaryColor)
	require.Equal(t, domain.DefaultSecondaryColor, settings.SecondaryColor)

	derived, err := svc.Status(ctx)
	require.NoError(t, err)
	require.True(t, derived.Completed)
	require.Equal(t, domain.SetupStepDone, derived.Step)
}

func TestPerformSetupSecondAttemptRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SetupService{Store: st}

	_, err := svc.PerformSetup(ctx, validSetupData())
	require.NoError(t, err)

	again := validSetupData()
	again.AdminEmail = "other@example.com"
	again.CompanyName = "Other Corp"
	_, err = svc.PerformSetup(ctx, again)
	require.ErrorIs(t, err, ErrSetupAlready)

	users, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, users)

	companies, err := st.Companies().CountCompanies(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, companies)
}

func TestPerformSetupValidation(t *testing.T) {
	ctx := context.Background()
	svc := &SetupService{Store: newTestStore(t)}

	tests := []struct {
		name   string
		mutate func(*domain.SetupData)
	}{
		{"missing admin name", func(d *domain.SetupData) { d.AdminName = "  " }},
		{"missing admin email", func(d *domain.SetupData) { d.AdminEmail = "" }},
		{"malformed admin email", func(d *domain.SetupData) { d.AdminEmail = "not-an-email" }},
		{"short password", func(d *domain.SetupData) { d.AdminPassword = "short" }},
		{"missing company name", func(d *domain.SetupData) { d.CompanyName = "" }},
		{"missing site title", func(d *domain.SetupData) { d.SiteTitle = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validSetupData()
			tt.mutate(&data)
			_, err := svc.PerformSetup(ctx, data)
			require.ErrorIs(t, err, ErrSetupData)
		})
	}

	// Nothing should have been created by the failed attempts.
	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.False(t, status.Completed)
}

func TestPerformSetupConcurrent(t *testing.T) {
	ctx := context.Background()

	// Racing goroutines need shared state; each :memory: pool connection is
	// its own database, so this test runs against a file-backed store.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "erp.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	svc := &SetupService{Store: st}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PerformSetup(ctx, validSetupData())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		lost++
		require.True(t,
			errors.Is(err, ErrSetupAlready) ||
				errors.Is(err, ErrSetupConflict) ||
				errors.Is(err, ErrDuplicateEmail),
			"loser got %v", err)
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, lost)

	users, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, users)

	companies, err := st.Companies().CountCompanies(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, companies)
}

func TestPerformSetupMinimumPasswordLength(t *testing.T) {
	ctx := context.Background()
	svc := &SetupService{Store: newTestStore(t)}

	data := validSetupData()
	data.AdminPassword = "abc123"
	status, err := svc.PerformSetup(ctx, data)
	require.NoError(t, err)
	require.True(t, status.Completed)
}

func TestPerformSetupNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SetupService{Store: st}

	data := validSetupData()
	data.AdminEmail = "  Maria@Example.COM "
	_, err := svc.PerformSetup(ctx, data)
	require.NoError(t, err)

	_, err = st.Users().GetUserByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
}

func TestPerformSetupKeepsCustomColors(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SetupService{Store: st}

	data := validSetupData()
	data.PrimaryColor = "#112233"
	data.SecondaryColor = "#445566"
	_, err := svc.PerformSetup(ctx, data)
	require.NoError(t, err)

	settings, err := st.SiteSettings().GetSiteSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "#112233", settings.PrimaryColor)
	require.Equal(t, "#445566", settings.SecondaryColor)
}

func TestPerformSetupDuplicateEmailRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SetupService{Store: st}

	now := time.Now().UTC()
	require.NoError(t, st.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Name:         "Existing",
		Email:        "maria@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	_, err := svc.PerformSetup(ctx, validSetupData())
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// The whole transaction rolled back: no company, no settings.
	_, err = st.Companies().GetTenantCompany(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.SiteSettings().GetSiteSettings(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStatusIgnoresStaleFlag(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SetupService{Store: st}

	// A tampered completion flag alone must not report the system as set up.
	require.NoError(t, st.SetupStatus().UpsertSetupStatus(ctx, domain.SetupStatus{
		Completed: true,
		Step:      domain.SetupStepDone,
	}))

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.False(t, status.Completed)
	require.Equal(t, domain.SetupStepDone, status.Step)
}
