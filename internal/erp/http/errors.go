package http

import (
	"errors"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation failures are 400, missing records 404, uniqueness and state
// conflicts 409, and anything unrecognized a generic 500 that leaks nothing.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSetupData),
		errors.Is(err, service.ErrUserData),
		errors.Is(err, service.ErrCompanyData),
		errors.Is(err, service.ErrSettingsData),
		errors.Is(err, service.ErrCustomerData),
		errors.Is(err, service.ErrInvalidCPF):
		httpx.WriteJSON(w, http.StatusBadRequest, erpsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})

	case errors.Is(err, store.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, erpsdk.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "resource not found",
		})

	case errors.Is(err, service.ErrSetupAlready),
		errors.Is(err, service.ErrSetupConflict),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateCPF),
		errors.Is(err, service.ErrDuplicateCustomer),
		errors.Is(err, service.ErrLastAdmin),
		errors.Is(err, service.ErrTenantProtected):
		httpx.WriteJSON(w, http.StatusConflict, erpsdk.ErrorResponse{
			Error:            "conflict",
			ErrorDescription: err.Error(),
		})

	default:
		httpx.WriteJSON(w, http.StatusInternalServerError, erpsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "an internal error occurred",
		})
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, erpsdk.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "Request body must be valid JSON",
	})
}
