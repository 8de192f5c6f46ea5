package domain

import "time"

// Company is an organization record. Exactly one company carries the tenant
// flag and functions as "the" organization of this deployment; it is created
// during setup and cannot be deleted.
type Company struct {
	ID        string
	Name      string
	Document  string // CNPJ, stored as given
	Address   string
	Phone     string
	Email     string
	Website   string
	Tenant    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
