// Package erpsdk is a small Go client for the ERP HTTP API. It mirrors the
// wire types the server speaks and is what the end-to-end tests drive.
package erpsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the ERP service. The zero token state covers the public
// endpoints; Login upgrades the client with a bearer token for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken installs a bearer token obtained out of band.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the currently installed bearer token.
func (c *Client) Token() string { return c.token }

// ============================================================================
// System
// ============================================================================

func (c *Client) Livez(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/livez", nil, nil)
}

func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}

// ============================================================================
// Setup
// ============================================================================

func (c *Client) SetupStatus(ctx context.Context) (SetupStatusResponse, error) {
	var out SetupStatusResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/setup/status", nil, &out)
	return out, err
}

func (c *Client) PerformSetup(ctx context.Context, req SetupRequest) (SetupStatusResponse, error) {
	var out SetupStatusResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/setup", req, &out)
	return out, err
}

// ============================================================================
// Auth
// ============================================================================

// Login authenticates and installs the returned token on the client, so
// subsequent calls are made as that user.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return out, err
	}
	c.token = out.Token
	return out, nil
}

// ============================================================================
// Site settings
// ============================================================================

func (c *Client) GetSiteSettings(ctx context.Context) (SiteSettingsResponse, error) {
	var out SiteSettingsResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/site-settings", nil, &out)
	return out, err
}

func (c *Client) UpdateSiteSettings(ctx context.Context, req SiteSettingsRequest) (SiteSettingsResponse, error) {
	var out SiteSettingsResponse
	err := c.doJSON(ctx, http.MethodPut, "/v1/site-settings", req, &out)
	return out, err
}

// ============================================================================
// Users
// ============================================================================

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/users", req, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/users/"+id, nil, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodPut, "/v1/users/"+id, req, &out)
	return out, err
}

func (c *Client) ChangeUserPassword(ctx context.Context, id, password string) error {
	return c.doJSON(ctx, http.MethodPut, "/v1/users/"+id+"/password", ChangePasswordRequest{Password: password}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/users/"+id, nil, nil)
}

// ============================================================================
// Companies
// ============================================================================

func (c *Client) CreateCompany(ctx context.Context, req CompanyRequest) (CompanyResponse, error) {
	var out CompanyResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/companies", req, &out)
	return out, err
}

func (c *Client) ListCompanies(ctx context.Context) ([]CompanyResponse, error) {
	var out []CompanyResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/companies", nil, &out)
	return out, err
}

func (c *Client) GetCompany(ctx context.Context, id string) (CompanyResponse, error) {
	var out CompanyResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/companies/"+id, nil, &out)
	return out, err
}

func (c *Client) GetTenantCompany(ctx context.Context) (CompanyResponse, error) {
	var out CompanyResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/companies/tenant", nil, &out)
	return out, err
}

func (c *Client) UpdateCompany(ctx context.Context, id string, req CompanyRequest) (CompanyResponse, error) {
	var out CompanyResponse
	err := c.doJSON(ctx, http.MethodPut, "/v1/companies/"+id, req, &out)
	return out, err
}

func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/companies/"+id, nil, nil)
}

// ============================================================================
// Customers
// ============================================================================

func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (CustomerResponse, error) {
	var out CustomerResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/customers", req, &out)
	return out, err
}

func (c *Client) ListCustomers(ctx context.Context) ([]CustomerResponse, error) {
	var out []CustomerResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/customers", nil, &out)
	return out, err
}

func (c *Client) SearchCustomers(ctx context.Context, query string) ([]CustomerResponse, error) {
	var out []CustomerResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/customers?q="+url.QueryEscape(query), nil, &out)
	return out, err
}

func (c *Client) GetCustomer(ctx context.Context, id string) (CustomerResponse, error) {
	var out CustomerResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/customers/"+id, nil, &out)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (CustomerResponse, error) {
	var out CustomerResponse
	err := c.doJSON(ctx, http.MethodPut, "/v1/customers/"+id, req, &out)
	return out, err
}

func (c *Client) SetCustomerActive(ctx context.Context, id string, active bool) (CustomerResponse, error) {
	var out CustomerResponse
	path := "/v1/customers/" + id + "/deactivate"
	if active {
		path = "/v1/customers/" + id + "/activate"
	}
	err := c.doJSON(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/customers/"+id, nil, nil)
}
