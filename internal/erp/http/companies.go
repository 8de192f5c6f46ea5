package http

import (
	"encoding/json"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
)

type CompaniesHandler struct {
	CompanyService *service.CompanyService
}

func companyToResponse(c domain.Company) erpsdk.CompanyResponse {
	return erpsdk.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Website:   c.Website,
		Tenant:    c.Tenant,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func companyRequestFromSDK(req erpsdk.CompanyRequest) service.CompanyRequest {
	return service.CompanyRequest{
		Name:     req.Name,
		Document: req.Document,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Website:  req.Website,
	}
}

// HandleCreate registers a company.
//
//	@Summary	Create company
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		request	body		erpsdk.CompanyRequest	true	"Company"
//	@Success	201		{object}	erpsdk.CompanyResponse
//	@Failure	400		{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/companies [post].
func (h *CompaniesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	c, err := h.CompanyService.CreateCompany(r.Context(), companyRequestFromSDK(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, companyToResponse(c))
}

// HandleList lists all companies.
//
//	@Summary	List companies
//	@Tags		Companies
//	@Produce	json
//	@Success	200	{array}	erpsdk.CompanyResponse
//	@Security	BearerAuth
//	@Router		/v1/companies [get].
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	companies, err := h.CompanyService.ListCompanies(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]erpsdk.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, companyToResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGetTenant returns the deployment's own organization.
//
//	@Summary	Get tenant company
//	@Tags		Companies
//	@Produce	json
//	@Success	200	{object}	erpsdk.CompanyResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse	"Setup has not run yet"
//	@Security	BearerAuth
//	@Router		/v1/companies/tenant [get].
func (h *CompaniesHandler) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	c, err := h.CompanyService.GetTenantCompany(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, companyToResponse(c))
}

// HandleGet fetches one company by id.
//
//	@Summary	Get company
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path		string	true	"Company ID"
//	@Success	200	{object}	erpsdk.CompanyResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/companies/{id} [get].
func (h *CompaniesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.CompanyService.GetCompany(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, companyToResponse(c))
}

// HandleUpdate rewrites a company's details.
//
//	@Summary	Update company
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Company ID"
//	@Param		request	body		erpsdk.CompanyRequest	true	"Company"
//	@Success	200		{object}	erpsdk.CompanyResponse
//	@Failure	404		{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/companies/{id} [put].
func (h *CompaniesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	c, err := h.CompanyService.UpdateCompany(r.Context(), r.PathValue("id"), companyRequestFromSDK(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, companyToResponse(c))
}

// HandleDelete removes a company. The tenant company is protected.
//
//	@Summary	Delete company
//	@Tags		Companies
//	@Param		id	path	string	true	"Company ID"
//	@Success	204
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Failure	409	{object}	erpsdk.ErrorResponse	"Tenant company cannot be deleted"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id} [delete].
func (h *CompaniesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CompanyService.DeleteCompany(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
