package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/api"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{userService: userService}
}

// POST /api/users 登入後的profile sync
func (h *UserHandler) Sync(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.SyncUserDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	user, err := h.userService.SyncProfile(r.Context(), principal.ID, service.SyncProfileParams{
		Email:    body.Email,
		Name:     body.Name,
		PhotoURL: body.PhotoURL,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user)
}

// GET /api/users/{uid} 本人或admin
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	uid := chi.URLParam(r, "uid")

	if !service.CanAccessUserResource(principal, uid) {
		api.ErrorJSON(w, er.New(er.ForbiddenCode, "Access denied."))
		return
	}

	user, err := h.userService.GetUser(r.Context(), uid)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user)
}

// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, users)
}

// PUT /api/users/{uid} 本人或admin
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	uid := chi.URLParam(r, "uid")

	if !service.CanAccessUserResource(principal, uid) {
		api.ErrorJSON(w, er.New(er.ForbiddenCode, "Access denied."))
		return
	}

	var body dto.UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), uid, db.UserUpdate{
		Email:       body.Email,
		Name:        body.Name,
		PhotoURL:    body.PhotoURL,
		PhoneNumber: body.PhoneNumber,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user)
}

// PUT /api/users/{uid}/status
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateUserStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	user, err := h.userService.UpdateStatus(r.Context(), chi.URLParam(r, "uid"), body.Status)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user)
}

// PUT /api/users/{uid}/role
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateUserRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	user, err := h.userService.UpdateRole(r.Context(), chi.URLParam(r, "uid"), body.Role)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user)
}
