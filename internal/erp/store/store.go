package store

import (
	"context"
	"errors"

	"github.com/xingubit/isperp/internal/erp/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let transactions
// reuse the same surface.
type Store interface {
	Users() Users
	Companies() Companies
	SiteSettings() SiteSettings
	SetupStatus() SetupStatus
	Customers() Customers

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn errors,
	// committed otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the login lookup; email doubles as the username.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// The unique index on email surfaces duplicates as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites the mutable fields and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	DeleteUser(ctx context.Context, id string) error

	// HasAdmin reports whether at least one active ADMIN user exists.
	HasAdmin(ctx context.Context) (bool, error)

	CountUsers(ctx context.Context) (int64, error)
}

type Companies interface {
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)

	// GetTenantCompany returns the company flagged as the deployment's
	// organization. ErrNotFound before setup has run.
	GetTenantCompany(ctx context.Context) (domain.Company, error)

	ListCompanies(ctx context.Context) ([]domain.Company, error)

	CreateCompany(ctx context.Context, c domain.Company) error

	UpdateCompany(ctx context.Context, c domain.Company) error

	DeleteCompany(ctx context.Context, id string) error

	CountCompanies(ctx context.Context) (int64, error)
}

// SiteSettings stores the single branding row under a fixed key.
type SiteSettings interface {
	// GetSiteSettings returns ErrNotFound until setup creates the row.
	GetSiteSettings(ctx context.Context) (domain.SiteSettings, error)

	// UpsertSiteSettings creates or replaces the fixed row.
	UpsertSiteSettings(ctx context.Context, s domain.SiteSettings) error
}

// SetupStatus stores the single first-run progress row under a fixed key.
// The completion flag here is the secondary signal; completeness is always
// re-derived from the dependent records.
type SetupStatus interface {
	GetSetupStatus(ctx context.Context) (domain.SetupStatus, error)
	UpsertSetupStatus(ctx context.Context, s domain.SetupStatus) error
}

type Customers interface {
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)

	// GetCustomerByCPF looks up by the cleaned (digits-only) CPF.
	GetCustomerByCPF(ctx context.Context, cpf string) (domain.Customer, error)

	GetCustomerByEmail(ctx context.Context, email string) (domain.Customer, error)

	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	ListActiveCustomers(ctx context.Context) ([]domain.Customer, error)

	// SearchCustomersByName matches case-insensitively on a name fragment.
	SearchCustomersByName(ctx context.Context, name string) ([]domain.Customer, error)

	// SearchCustomersByCPF matches on a CPF digit fragment.
	SearchCustomersByCPF(ctx context.Context, cpf string) ([]domain.Customer, error)

	CreateCustomer(ctx context.Context, c domain.Customer) error

	UpdateCustomer(ctx context.Context, c domain.Customer) error

	DeleteCustomer(ctx context.Context, id string) error
}
