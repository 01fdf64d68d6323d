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

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	cart, err := h.cartService.GetCart(r.Context(), principal.ID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, cart)
}

// POST /api/cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}
	// quantity沒給視為1
	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	cart, err := h.cartService.AddItem(r.Context(), principal.ID, body.ProductID, quantity)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, cart)
}

// PUT /api/cart/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}
	if body.Quantity == nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Quantity is required"))
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(r.Context(), principal.ID, chi.URLParam(r, "productId"), *body.Quantity)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, cart)
}

// DELETE /api/cart/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	cart, err := h.cartService.RemoveItem(r.Context(), principal.ID, chi.URLParam(r, "productId"))
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, cart)
}

// DELETE /api/cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	cart, err := h.cartService.ClearCart(r.Context(), principal.ID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, cart)
}
