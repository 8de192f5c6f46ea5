package sqlite

import (
	"context"

	"github.com/xingubit/isperp/internal/erp/domain"
)

type siteSettingsRepo struct {
	db dbtx
}

func (r *siteSettingsRepo) GetSiteSettings(ctx context.Context) (domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT site_title, site_description, primary_color, secondary_color,
		        logo_url, favicon_url, created_at, updated_at
		   FROM site_settings WHERE id = 1`).
		Scan(&s.SiteTitle, &s.SiteDescription, &s.PrimaryColor, &s.SecondaryColor,
			&s.LogoURL, &s.FaviconURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.SiteSettings{}, mapNotFound(err)
	}
	return s, nil
}

func (r *siteSettingsRepo) UpsertSiteSettings(ctx context.Context, s domain.SiteSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_settings
		        (id, site_title, site_description, primary_color, secondary_color,
		         logo_url, favicon_url, created_at, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		        site_title       = excluded.site_title,
		        site_description = excluded.site_description,
		        primary_color    = excluded.primary_color,
		        secondary_color  = excluded.secondary_color,
		        logo_url         = excluded.logo_url,
		        favicon_url      = excluded.favicon_url,
		        updated_at       = excluded.updated_at`,
		s.SiteTitle, s.SiteDescription, s.PrimaryColor, s.SecondaryColor,
		s.LogoURL, s.FaviconURL, s.CreatedAt, s.UpdatedAt)
	return err
}
