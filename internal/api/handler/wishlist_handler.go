package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/api"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	wishlistService service.IWishlistService
}

func NewWishlistHandler(wishlistService service.IWishlistService) *WishlistHandler {
	if wishlistService == nil {
		panic("wishlistService cannot be nil")
	}
	return &WishlistHandler{wishlistService: wishlistService}
}

// POST /api/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.AddWishlistItemDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	item, err := h.wishlistService.AddItem(r.Context(), principal.ID, body.ProductID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, item)
}

// DELETE /api/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	if err := h.wishlistService.RemoveItem(r.Context(), principal.ID, chi.URLParam(r, "productId")); err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.MessageDTO{Message: "Product removed from wishlist"})
}

// GET /api/wishlist/user/{uid} 本人或admin
func (h *WishlistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	uid := chi.URLParam(r, "uid")

	if !service.CanAccessUserResource(principal, uid) {
		api.ErrorJSON(w, er.New(er.ForbiddenCode, "Access denied."))
		return
	}

	items, err := h.wishlistService.ListItems(r.Context(), uid)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, items)
}

// GET /api/wishlist/status/{productId}
func (h *WishlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	in, err := h.wishlistService.Status(r.Context(), principal.ID, chi.URLParam(r, "productId"))
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.WishlistStatusDTO{InWishlist: in})
}
