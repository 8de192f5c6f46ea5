package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP authenticates an email/password pair.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns a signed bearer token. All credential failures produce the same 401 response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		erpsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	erpsdk.LoginResponse
//	@Failure		400		{object}	erpsdk.ErrorResponse
//	@Failure		401		{object}	erpsdk.LoginResponse	"Invalid credentials"
//	@Failure		500		{object}	erpsdk.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, erpsdk.LoginResponse{
				Success: false,
				Message: "Invalid email or password",
			})
			return
		}
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, erpsdk.LoginResponse{
		Success:  true,
		Message:  "Login successful",
		Token:    result.Token,
		Username: result.Username,
		Role:     result.Role,
	})
}
