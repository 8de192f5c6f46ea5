package http

import (
	"encoding/json"
	"net/http"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/pkg/erpsdk"
	"github.com/xingubit/isperp/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

func userToResponse(u domain.User) erpsdk.UserResponse {
	return erpsdk.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HandleCreate creates a user.
//
//	@Summary	Create user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		erpsdk.CreateUserRequest	true	"User"
//	@Success	201		{object}	erpsdk.UserResponse
//	@Failure	400		{object}	erpsdk.ErrorResponse
//	@Failure	409		{object}	erpsdk.ErrorResponse	"Email already registered"
//	@Security	BearerAuth
//	@Router		/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	u, err := h.UserService.CreateUser(r.Context(), service.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, userToResponse(u))
}

// HandleList lists all users.
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}	erpsdk.UserResponse
//	@Security	BearerAuth
//	@Router		/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]erpsdk.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet fetches one user by id.
//
//	@Summary	Get user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	erpsdk.UserResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userToResponse(u))
}

// HandleUpdate updates name, email, role, or active state.
//
//	@Summary	Update user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User ID"
//	@Param		request	body		erpsdk.UpdateUserRequest	true	"Fields to update"
//	@Success	200		{object}	erpsdk.UserResponse
//	@Failure	400		{object}	erpsdk.ErrorResponse
//	@Failure	404		{object}	erpsdk.ErrorResponse
//	@Failure	409		{object}	erpsdk.ErrorResponse	"Email taken or last admin"
//	@Security	BearerAuth
//	@Router		/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	u, err := h.UserService.UpdateUser(r.Context(), r.PathValue("id"), service.UpdateUserRequest{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userToResponse(u))
}

// HandleChangePassword replaces a user's password.
//
//	@Summary	Change user password
//	@Tags		Users
//	@Accept		json
//	@Param		id		path	string							true	"User ID"
//	@Param		request	body	erpsdk.ChangePasswordRequest	true	"New password"
//	@Success	204
//	@Failure	400	{object}	erpsdk.ErrorResponse
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/{id}/password [put].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req erpsdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), r.PathValue("id"), req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a user.
//
//	@Summary	Delete user
//	@Tags		Users
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Failure	404	{object}	erpsdk.ErrorResponse
//	@Failure	409	{object}	erpsdk.ErrorResponse	"Cannot remove the last admin"
//	@Security	BearerAuth
//	@Router		/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
