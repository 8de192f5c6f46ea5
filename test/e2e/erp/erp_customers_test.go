package erp_test

import (
	"testing"

	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/stretchr/testify/require"
)

// TestCustomerLifecycle drives a customer record through create, read,
// update, deactivate, reactivate, and delete.
func TestCustomerLifecycle(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	created, err := client.CreateCustomer(ctx, erpsdk.CustomerRequest{
		Name:  "João Souza",
		CPF:   "529.982.247-25",
		Email: "joao@example.com",
		City:  "São Paulo",
		State: "SP",
	})
	require.NoError(t, err)
	require.Equal(t, "529.982.247-25", created.CPF) // formatted for display
	require.True(t, created.Active)

	got, err := client.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)

	updated, err := client.UpdateCustomer(ctx, created.ID, erpsdk.CustomerRequest{
		Name:  "João S. Souza",
		CPF:   "52998224725",
		Email: "joao@example.com",
		Phone: "+55 11 99999-0000",
	})
	require.NoError(t, err)
	require.Equal(t, "João S. Souza", updated.Name)

	deactivated, err := client.SetCustomerActive(ctx, created.ID, false)
	require.NoError(t, err)
	require.False(t, deactivated.Active)

	reactivated, err := client.SetCustomerActive(ctx, created.ID, true)
	require.NoError(t, err)
	require.True(t, reactivated.Active)

	require.NoError(t, client.DeleteCustomer(ctx, created.ID))

	_, err = client.GetCustomer(ctx, created.ID)
	require.True(t, erpsdk.IsNotFound(err), "deleted customer should 404, got: %v", err)
}

// TestCustomerCPFValidation verifies the server rejects CPFs that fail the
// checksum with 400.
func TestCustomerCPFValidation(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	for _, bad := range []string{"", "123", "529.982.247-24", "111.111.111-11"} {
		_, err := client.CreateCustomer(ctx, erpsdk.CustomerRequest{Name: "X", CPF: bad})
		apiErr := &erpsdk.APIError{}
		require.ErrorAs(t, err, &apiErr, "cpf %q should be rejected", bad)
		require.Equal(t, 400, apiErr.StatusCode)
	}
}

// TestCustomerDuplicateCPF verifies the same CPF cannot be registered twice,
// regardless of formatting.
func TestCustomerDuplicateCPF(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	_, err := client.CreateCustomer(ctx, erpsdk.CustomerRequest{Name: "First", CPF: "52998224725"})
	require.NoError(t, err)

	_, err = client.CreateCustomer(ctx, erpsdk.CustomerRequest{Name: "Second", CPF: "529.982.247-25"})
	require.True(t, erpsdk.IsConflict(err), "duplicate CPF should 409, got: %v", err)
}

// TestCustomerSearch verifies the q parameter searches names and CPFs.
func TestCustomerSearch(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	_, err := client.CreateCustomer(ctx, erpsdk.CustomerRequest{Name: "João Souza", CPF: "52998224725"})
	require.NoError(t, err)
	_, err = client.CreateCustomer(ctx, erpsdk.CustomerRequest{Name: "Ana Lima", CPF: "93541134780"})
	require.NoError(t, err)

	byName, err := client.SearchCustomers(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "Ana Lima", byName[0].Name)

	byCPF, err := client.SearchCustomers(ctx, "93541")
	require.NoError(t, err)
	require.Len(t, byCPF, 1)
	require.Equal(t, "Ana Lima", byCPF[0].Name)

	all, err := client.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

// TestCompanyManagement verifies company CRUD plus the tenant protection.
func TestCompanyManagement(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	created, err := client.CreateCompany(ctx, erpsdk.CompanyRequest{
		Name:  "Fornecedor XYZ",
		Email: "contact@xyz.com",
	})
	require.NoError(t, err)
	require.False(t, created.Tenant)

	companies, err := client.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2) // tenant + the new one

	// Ordinary companies can be deleted.
	require.NoError(t, client.DeleteCompany(ctx, created.ID))

	// The tenant company cannot.
	tenant, err := client.GetTenantCompany(ctx)
	require.NoError(t, err)
	err = client.DeleteCompany(ctx, tenant.ID)
	require.True(t, erpsdk.IsConflict(err), "tenant deletion should 409, got: %v", err)
}
