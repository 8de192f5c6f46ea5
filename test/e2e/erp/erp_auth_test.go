package erp_test

import (
	"testing"

	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginFlow verifies the admin created by setup can log in and use the
// returned token against a protected endpoint.
func TestLoginFlow(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := setupAndLogin(t, baseURL)
	ctx := t.Context()

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, adminEmail, users[0].Email)
	require.Equal(t, "ADMIN", users[0].Role)
}

// TestLoginRejectsBadCredentials verifies wrong passwords and unknown emails
// both produce 401.
func TestLoginRejectsBadCredentials(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	client := erpsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.PerformSetup(ctx, defaultSetupRequest())
	require.NoError(t, err)

	_, err = client.Login(ctx, adminEmail, "wrong-password")
	require.True(t, erpsdk.IsUnauthorized(err), "wrong password should return 401, got: %v", err)

	_, err = client.Login(ctx, "nobody@example.com", adminPassword)
	require.True(t, erpsdk.IsUnauthorized(err), "unknown email should return 401, got: %v", err)
}

// TestProtectedEndpointsRequireToken verifies requests without a bearer token
// are rejected.
func TestProtectedEndpointsRequireToken(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	anon := erpsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := anon.PerformSetup(ctx, defaultSetupRequest())
	require.NoError(t, err)

	_, err = anon.ListUsers(ctx)
	require.True(t, erpsdk.IsUnauthorized(err), "unauthenticated request should return 401, got: %v", err)

	_, err = anon.ListCustomers(ctx)
	require.True(t, erpsdk.IsUnauthorized(err))

	// Garbage token is also rejected.
	anon.SetToken("not-a-real-token")
	_, err = anon.ListUsers(ctx)
	require.True(t, erpsdk.IsUnauthorized(err))
}

// TestRoleEnforcement verifies a USER role token cannot reach admin-only
// endpoints but can use the shared ones.
func TestRoleEnforcement(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	admin := setupAndLogin(t, baseURL)
	ctx := t.Context()

	_, err := admin.CreateUser(ctx, erpsdk.CreateUserRequest{
		Name:     "Regular",
		Email:    "regular@example.com",
		Password: "Regular123!",
		Role:     "USER",
	})
	require.NoError(t, err)

	user := erpsdk.NewClient(baseURL)
	_, err = user.Login(ctx, "regular@example.com", "Regular123!")
	require.NoError(t, err)

	// Admin-only surface is closed.
	_, err = user.ListUsers(ctx)
	apiErr := &erpsdk.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.StatusCode)

	// Shared surface still works.
	_, err = user.ListCompanies(ctx)
	require.NoError(t, err)
	_, err = user.ListCustomers(ctx)
	require.NoError(t, err)
}

// TestPublicBrandingEndpoint verifies site settings are readable without
// authentication so the frontend can style the login screen.
func TestPublicBrandingEndpoint(t *testing.T) {
	baseURL, cleanup := setupERPContainer(t)
	defer cleanup()

	anon := erpsdk.NewClient(baseURL)
	ctx := t.Context()

	// Before setup: defaults
	settings, err := anon.GetSiteSettings(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, settings.PrimaryColor)

	_, err = anon.PerformSetup(ctx, defaultSetupRequest())
	require.NoError(t, err)

	// After setup: the configured branding, still without a token
	settings, err = anon.GetSiteSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, siteTitle, settings.SiteTitle)
}
