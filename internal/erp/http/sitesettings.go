package http

import (
	"encoding/json"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
)

type SiteSettingsHandler struct {
	SiteSettingsService *service.SiteSettingsService
}

func settingsToResponse(s domain.SiteSettings) erpsdk.SiteSettingsResponse {
	return erpsdk.SiteSettingsResponse{
		SiteTitle:       s.SiteTitle,
		SiteDescription: s.SiteDescription,
		PrimaryColor:    s.PrimaryColor,
		SecondaryColor:  s.SecondaryColor,
		LogoURL:         s.LogoURL,
		FaviconURL:      s.FaviconURL,
	}
}

// HandleGet returns the site branding. Public so the frontend can style
// the login and setup screens before anyone authenticates.
//
//	@Summary	Get site settings
//	@Tags		SiteSettings
//	@Produce	json
//	@Success	200	{object}	erpsdk.SiteSettingsResponse
//	@Router		/v1/site-settings [get].
func (h *SiteSettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.SiteSettingsService.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settingsToResponse(settings))
}

// HandleUpdate replaces the site branding.
//
//	@Summary	Update site settings
//	@Tags		SiteSettings
//	@Accept		json
//	@Produce	json
//	@Param		request	body		erpsdk.SiteSettingsRequest	true	"Settings"
//	@Success	200		{object}	erpsdk.SiteSettingsResponse
//	@Failure	400		{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/site-settings [put].
func (h *SiteSettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.SiteSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	settings, err := h.SiteSettingsService.UpdateSettings(r.Context(), service.SiteSettingsRequest{
		SiteTitle:       req.SiteTitle,
		SiteDescription: req.SiteDescription,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		LogoURL:         req.LogoURL,
		FaviconURL:      req.FaviconURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settingsToResponse(settings))
}
