package erp_test

import (
	"testing"

	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/stretchr/testify/require"
)

// TestSetupFlow verifies the full first-run flow: status reports incomplete,
// setup succeeds exactly once, and status flips to complete.
func TestSetupFlow(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := erpsdk.NewClient(baseURL)
	ctx := t.Context()

	// Fresh system reports incomplete
	status, err := client.SetupStatus(ctx)
	require.NoError(t, err)
	require.False(t, status.Completed)
	require.Zero(t, status.Step)

	// Perform setup
	result, err := client.PerformSetup(ctx, defaultSetupRequest())
	require.NoError(t, err)
	require.True(t, result.Completed)
	require.Equal(t, 3, result.Step)

	// Status now reports complete
	status, err = client.SetupStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Completed)
	require.Equal(t, 3, status.Step)
}

// TestSetupOnlyOnce verifies a second setup attempt is rejected with 409.
func TestSetupOnlyOnce(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := erpsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.PerformSetup(ctx, defaultSetupRequest())
	require.NoError(t, err)

	again := defaultSetupRequest()
	again.AdminEmail = "other@example.com"
	_, err = client.PerformSetup(ctx, again)
	require.Error(t, err)
	require.True(t, erpsdk.IsConflict(err), "second setup should return 409, got: %v", err)
}

// TestSetupValidation verifies malformed setup payloads are rejected with 400
// and leave the system untouched.
func TestSetupValidation(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := erpsdk.NewClient(baseURL)
	ctx := t.Context()

	bad := defaultSetupRequest()
	bad.AdminPassword = "short"
	_, err := client.PerformSetup(ctx, bad)
	require.Error(t, err)

	apiErr := &erpsdk.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)

	status, err := client.SetupStatus(ctx)
	require.NoError(t, err)
	require.False(t, status.Completed)
}

// TestSetupSeedsTenantAndBranding verifies the tenant company and the site
// settings created by setup are visible afterwards.
func TestSetupSeedsTenantAndBranding(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	tenant, err := client.GetTenantCompany(ctx)
	require.NoError(t, err)
	require.Equal(t, companyName, tenant.Name)
	require.True(t, tenant.Tenant)

	settings, err := client.GetSiteSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, siteTitle, settings.SiteTitle)
	require.NotEmpty(t, settings.PrimaryColor)
}
