package http

import (
	"encoding/json"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
	"github.com/xingubit/isperp/pkg/slogx"
)

type SetupHandler struct {
	SetupService *service.SetupService
}

// HandleStatus reports first-run progress.
//
//	@Summary		Setup status
//	@Description	Reports whether the system has been through first-run setup. Completeness is derived from the actual records (admin user, company, site settings), not just a stored flag.
//	@Tags			Setup
//	@Produce		json
//	@Success		200	{object}	erpsdk.SetupStatusResponse
//	@Failure		500	{object}	erpsdk.ErrorResponse
//	@Router			/v1/setup/status [get].
func (h *SetupHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.SetupService.Status(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, erpsdk.SetupStatusResponse{
		Completed: status.Completed,
		Step:      status.Step,
	})
}

// HandlePerform runs one-shot first-run setup.
//
//	@Summary		Run first-run setup
//	@Description	Creates the admin user, the tenant company, and the site settings in a single transaction. Available exactly once; later calls return 409.
//	@Tags			Setup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		erpsdk.SetupRequest	true	"Setup payload"
//	@Success		201		{object}	erpsdk.SetupStatusResponse
//	@Failure		400		{object}	erpsdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	erpsdk.ErrorResponse	"Already set up or concurrent setup"
//	@Failure		500		{object}	erpsdk.ErrorResponse
//	@Router			/v1/setup [post].
func (h *SetupHandler) HandlePerform(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req erpsdk.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	status, err := h.SetupService.PerformSetup(r.Context(), domain.SetupData{
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,

		CompanyName:     req.CompanyName,
		CompanyDocument: req.CompanyDocument,
		CompanyAddress:  req.CompanyAddress,
		CompanyPhone:    req.CompanyPhone,
		CompanyEmail:    req.CompanyEmail,
		CompanyWebsite:  req.CompanyWebsite,

		SiteTitle:       req.SiteTitle,
		SiteDescription: req.SiteDescription,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	l.Info("setup completed via API")
	httpx.WriteJSON(w, http.StatusCreated, erpsdk.SetupStatusResponse{
		Completed: status.Completed,
		Step:      status.Step,
		Message:   "Setup completed successfully",
	})
}
