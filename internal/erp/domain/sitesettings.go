package domain

import "time"

// Default branding colors applied when setup omits them.
const (
	DefaultPrimaryColor   = "#1976d2"
	DefaultSecondaryColor = "#dc004e"
)

// SiteSettings is the branding configuration. There is exactly one row,
// stored under a fixed key; updates upsert against it.
type SiteSettings struct {
	SiteTitle       string
	SiteDescription string
	PrimaryColor    string // hex, e.g. "#1976d2"
	SecondaryColor  string
	LogoURL         string
	FaviconURL      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
