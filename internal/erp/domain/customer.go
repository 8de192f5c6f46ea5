package domain

import "time"

// Customer is a client record. CPF is stored cleaned (digits only) and is
// unique; email is unique when present.
type Customer struct {
	ID        string
	Name      string
	CPF       string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
