package service

import (
	"context"
	"testing"

	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/stretchr/testify/require"
)

func TestCompanyCRUD(t *testing.T) {
	ctx := context.Background()
	svc := &CompanyService{Store: newTestStore(t)}

	c, err := svc.CreateCompany(ctx, CompanyRequest{Name: "Fornecedor XYZ", Email: "Contact@XYZ.com"})
	require.NoError(t, err)
	require.Equal(t, "contact@xyz.com", c.Email)
	require.False(t, c.Tenant)

	got, err := svc.GetCompany(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.Name, got.Name)

	updated, err := svc.UpdateCompany(ctx, c.ID, CompanyRequest{Name: "Fornecedor XYZ SA", Phone: "+55 11 5555-0000"})
	require.NoError(t, err)
	require.Equal(t, "Fornecedor XYZ SA", updated.Name)

	require.NoError(t, svc.DeleteCompany(ctx, c.ID))
	_, err = svc.GetCompany(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateCompanyRequiresName(t *testing.T) {
	ctx := context.Background()
	svc := &CompanyService{Store: newTestStore(t)}

	_, err := svc.CreateCompany(ctx, CompanyRequest{Name: "   "})
	require.ErrorIs(t, err, ErrCompanyData)
}

func TestTenantCompanyProtectedFromDeletion(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := &CompanyService{Store: st}

	tenant, err := svc.GetTenantCompany(ctx)
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteCompany(ctx, tenant.ID), ErrTenantProtected)

	// Updating the tenant company is still allowed.
	updated, err := svc.UpdateCompany(ctx, tenant.ID, CompanyRequest{Name: "Acme Holdings"})
	require.NoError(t, err)
	require.Equal(t, "Acme Holdings", updated.Name)
	require.True(t, updated.Tenant)
}
