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

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// POST /api/orders
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), principal, service.PlaceOrderParams{
		ProductID:       body.ProductID,
		ProductTitle:    body.ProductTitle,
		ProductImage:    body.ProductImage,
		UnitPrice:       body.UnitPrice,
		OrderedQuantity: body.OrderedQuantity,
		TotalItemPrice:  body.TotalItemPrice,
		CustomerName:    body.CustomerName,
		PhysicalAddress: body.PhysicalAddress,
		MapEmbedLink:    body.MapEmbedLink,
		Phone:           body.Phone,
		PaymentMethod:   body.PaymentMethod,
		TransactionID:   body.TransactionID,
		SenderNumber:    body.SenderNumber,
		Status:          body.Status,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, order)
}

// POST /api/orders/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	result, err := h.orderService.Checkout(r.Context(), principal, service.CheckoutParams{
		CustomerName:    body.CustomerName,
		PhysicalAddress: body.PhysicalAddress,
		MapEmbedLink:    body.MapEmbedLink,
		Phone:           body.Phone,
		PaymentMethod:   body.PaymentMethod,
		TransactionID:   body.TransactionID,
		SenderNumber:    body.SenderNumber,
		CouponCode:      body.CouponCode,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, result)
}

// GET /api/orders/user/{uid} 本人或admin
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	uid := chi.URLParam(r, "uid")

	if !service.CanAccessUserResource(principal, uid) {
		api.ErrorJSON(w, er.New(er.ForbiddenCode, "Access denied."))
		return
	}

	orders, err := h.orderService.ListUserOrders(r.Context(), uid)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, orders)
}

// GET /api/orders
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllOrders(r.Context())
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, orders)
}

// PUT /api/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	order, err := h.orderService.SetOrderStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, order)
}
