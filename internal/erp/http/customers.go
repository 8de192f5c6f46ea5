package http

import (
	"encoding/json"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/pkg/cpf"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
)

type CustomersHandler struct {
	CustomerService *service.CustomerService
}

func customerToResponse(c domain.Customer) erpsdk.CustomerResponse {
	return erpsdk.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		CPF:       cpf.Format(c.CPF),
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func customerRequestFromSDK(req erpsdk.CustomerRequest) service.CustomerRequest {
	return service.CustomerRequest{
		Name:    req.Name,
		CPF:     req.CPF,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	}
}

func writeCustomers(w http.ResponseWriter, customers []domain.Customer) {
	out := make([]erpsdk.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerToResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate registers a customer. The CPF must pass the checksum.
//
//	@Summary	Create customer
//	@Tags		Customers
//	@Accept		json
//	@Produce	json
//	@Param		request	body		erpsdk.CustomerRequest	true	"Customer"
//	@Success	201		{object}	erpsdk.CustomerResponse
//	@Failure	400		{object}	erpsdk.ErrorResponse	"Validation failed or invalid CPF"
//	@Failure	409		{object}	erpsdk.ErrorResponse	"CPF or email already registered"
//	@Security	BearerAuth
//	@Router		/v1/customers [post].
func (h *CustomersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	c, err := h.CustomerService.CreateCustomer(r.Context(), customerRequestFromSDK(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, customerToResponse(c))
}

// HandleList lists customers, optionally filtered by ?q= (name or CPF
// fragment) or ?active=true.
//
//	@Summary	List customers
//	@Tags		Customers
//	@Produce	json
//	@Param		q		query	string	false	"Name or CPF fragment"
//	@Param		active	query	bool	false	"Only active customers"
//	@Success	200		{array}	erpsdk.CustomerResponse
//	@Security	BearerAuth
//	@Router		/v1/customers [get].
func (h *CustomersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		customers, err := h.CustomerService.SearchCustomers(r.Context(), q)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeCustomers(w, customers)
		return
	}

	var customers []domain.Customer
	var err error
	if r.URL.Query().Get("active") == "true" {
		customers, err = h.CustomerService.ListActiveCustomers(r.Context())
	} else {
		customers, err = h.CustomerService.ListCustomers(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCustomers(w, customers)
}

// HandleGet fetches one customer by id.
//
//	@Summary	Get customer
//	@Tags		Customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"
//	@Success	200	{object}	erpsdk.CustomerResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/customers/{id} [get].
func (h *CustomersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.CustomerService.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customerToResponse(c))
}

// HandleUpdate rewrites a customer record.
//
//	@Summary	Update customer
//	@Tags		Customers
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Customer ID"
//	@Param		request	body		erpsdk.CustomerRequest	true	"Customer"
//	@Success	200		{object}	erpsdk.CustomerResponse
//	@Failure	400		{object}	erpsdk.ErrorResponse
//	@Failure	404		{object}	erpsdk.ErrorResponse
//	@Failure	409		{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/customers/{id} [put].
func (h *CustomersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	c, err := h.CustomerService.UpdateCustomer(r.Context(), r.PathValue("id"), customerRequestFromSDK(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customerToResponse(c))
}

// HandleActivate re-enables a customer.
//
//	@Summary	Activate customer
//	@Tags		Customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"
//	@Success	200	{object}	erpsdk.CustomerResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/customers/{id}/activate [post].
func (h *CustomersHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// HandleDeactivate soft-disables a customer, keeping its history.
//
//	@Summary	Deactivate customer
//	@Tags		Customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"
//	@Success	200	{object}	erpsdk.CustomerResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/customers/{id}/deactivate [post].
func (h *CustomersHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *CustomersHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	c, err := h.CustomerService.SetCustomerActive(r.Context(), r.PathValue("id"), active)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customerToResponse(c))
}

// HandleDelete removes a customer permanently.
//
//	@Summary	Delete customer
//	@Tags		Customers
//	@Param		id	path	string	true	"Customer ID"
//	@Success	204
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/customers/{id} [delete].
func (h *CustomersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CustomerService.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
