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

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	return &ReviewHandler{reviewService: reviewService}
}

// POST /api/reviews
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.AddReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}
	if body.Rating == nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Rating is required."))
		return
	}

	review, err := h.reviewService.AddReview(r.Context(), principal, body.ProductID, *body.Rating, body.Comment)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, review)
}

// GET /api/reviews/product/{productId}
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListReviews(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, reviews)
}

// POST /api/reviews/{reviewId}/reply
func (h *ReviewHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var body dto.AddReplyDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	review, err := h.reviewService.AddReply(r.Context(), principal, chi.URLParam(r, "reviewId"), body.ReplyText)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, review)
}
