package domain

import "time"

// User is a system operator. Email doubles as the login username and is
// unique across all users. PasswordHash is argon2id encoded, never the
// plaintext. Users are deactivated rather than deleted where possible.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
