package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
)

var ErrSettingsData = errors.New("invalid site settings")

// SiteSettingsService manages the single branding row.
type SiteSettingsService struct {
	Store store.Store
}

// GetSettings returns the branding row, or defaults when setup has not
// created one yet so the frontend always has something to render.
func (s *SiteSettingsService) GetSettings(ctx context.Context) (domain.SiteSettings, error) {
	settings, err := s.Store.SiteSettings().GetSiteSettings(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SiteSettings{
				PrimaryColor:   domain.DefaultPrimaryColor,
				SecondaryColor: domain.DefaultSecondaryColor,
			}, nil
		}
		return domain.SiteSettings{}, err
	}
	return settings, nil
}

type SiteSettingsRequest struct {
	SiteTitle       string
	SiteDescription string
	PrimaryColor    string
	SecondaryColor  string
	LogoURL         string
	FaviconURL      string
}

// UpdateSettings upserts the branding row. Blank colors fall back to the
// defaults rather than persisting empty strings.
func (s *SiteSettingsService) UpdateSettings(ctx context.Context, req SiteSettingsRequest) (domain.SiteSettings, error) {
	req.SiteTitle = strings.TrimSpace(req.SiteTitle)
	if req.SiteTitle == "" {
		return domain.SiteSettings{}, fmt.Errorf("%w: site title is required", ErrSettingsData)
	}
	if req.PrimaryColor == "" {
		req.PrimaryColor = domain.DefaultPrimaryColor
	}
	if req.SecondaryColor == "" {
		req.SecondaryColor = domain.DefaultSecondaryColor
	}

	now := time.Now().UTC()
	settings := domain.SiteSettings{
		SiteTitle:       req.SiteTitle,
		SiteDescription: req.SiteDescription,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		LogoURL:         req.LogoURL,
		FaviconURL:      req.FaviconURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if existing, err := s.Store.SiteSettings().GetSiteSettings(ctx); err == nil {
		settings.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.SiteSettings{}, err
	}

	if err := s.Store.SiteSettings().UpsertSiteSettings(ctx, settings); err != nil {
		return domain.SiteSettings{}, err
	}
	return settings, nil
}
