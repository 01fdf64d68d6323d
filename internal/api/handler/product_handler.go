package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/api"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{catalogService: catalogService}
}

// GET /api/products?category=&search=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	products, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, products)
}

// GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, product)
}

// POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), service.CreateProductParams{
		Title:              body.Title,
		Price:              body.Price,
		DiscountPercentage: body.DiscountPercentage,
		Description:        body.Description,
		Category:           body.Category,
		Image:              body.Image,
		Stock:              body.Stock,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, product)
}

// PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.ErrorJSON(w, er.New(er.InvalidArgumentCode, "Invalid request body"))
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), model.ProductUpdate{
		Title:              body.Title,
		Price:              body.Price,
		DiscountPercentage: body.DiscountPercentage,
		Description:        body.Description,
		Category:           body.Category,
		Image:              body.Image,
		Stock:              body.Stock,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, product)
}

// DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.MessageDTO{Message: "Product deleted successfully"})
}
