package service

import (
	"context"
	"testing"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsDefaultsBeforeSetup(t *testing.T) {
	ctx := context.Background()
	svc := &SiteSettingsService{Store: newTestStore(t)}

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	require.Empty(t, settings.SiteTitle)
	require.Equal(t, domain.DefaultPrimaryColor, settings.PrimaryColor)
	require.Equal(t, domain.DefaultSecondaryColor, settings.SecondaryColor)
}

func TestUpdateSettingsUpserts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := &SiteSettingsService{Store: st}

	updated, err := svc.UpdateSettings(ctx, SiteSettingsRequest{
		SiteTitle:      "New Title",
		PrimaryColor:   "#000000",
		SecondaryColor: "#ffffff",
		LogoURL:        "https://cdn.example.com/logo.png",
	})
	require.NoError(t, err)
	require.Equal(t, "New Title", updated.SiteTitle)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "New Title", got.SiteTitle)
	require.Equal(t, "#000000", got.PrimaryColor)
	require.Equal(t, "https://cdn.example.com/logo.png", got.LogoURL)
}

func TestUpdateSettingsBlankColorsFallBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedAdmin(t, st)
	svc := &SiteSettingsService{Store: st}

	got, err := svc.UpdateSettings(ctx, SiteSettingsRequest{SiteTitle: "Title Only"})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultPrimaryColor, got.PrimaryColor)
	require.Equal(t, domain.DefaultSecondaryColor, got.SecondaryColor)
}

func TestUpdateSettingsRequiresTitle(t *testing.T) {
	ctx := context.Background()
	svc := &SiteSettingsService{Store: newTestStore(t)}

	_, err := svc.UpdateSettings(ctx, SiteSettingsRequest{SiteTitle: "  "})
	require.ErrorIs(t, err, ErrSettingsData)
}
