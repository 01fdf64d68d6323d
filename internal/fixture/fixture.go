package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fallback 啟動時載入的唯讀商品dataset
// 用途: (1) products collection為空時seed (2) db掛掉時catalog read path的備援
// 載入後不再變動, 以injected collaborator傳入catalog service
type Fallback struct {
	products []model.Product
	byID     map[string]model.Product
}

type rawFixture struct {
	Products []rawProduct `json:"products"`
}

type rawProduct struct {
	Title              string   `json:"title"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	Stock              int      `json:"stock"`
	Rating             float64  `json:"rating"`
	Reviews            []any    `json:"reviews"`
	Meta               struct {
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	} `json:"meta"`
}

func Load(path string) (*Fallback, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}

	var parsed rawFixture
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing fixture file: %w", err)
	}

	f := &Fallback{
		products: make([]model.Product, 0, len(parsed.Products)),
		byID:     make(map[string]model.Product, len(parsed.Products)),
	}
	for _, p := range parsed.Products {
		image := p.Thumbnail
		if image == "" && len(p.Images) > 0 {
			image = p.Images[0]
		}
		product := model.Product{
			ID:                 primitive.NewObjectID(),
			Title:              p.Title,
			Slug:               model.Slugify(p.Title),
			Price:              p.Price,
			DiscountPercentage: p.DiscountPercentage,
			Description:        p.Description,
			Category:           p.Category,
			Image:              image,
			Stock:              p.Stock,
			Rating: model.Rating{
				Rate:  p.Rating,
				Count: len(p.Reviews),
			},
			CreatedAt: p.Meta.CreatedAt,
			UpdatedAt: p.Meta.UpdatedAt,
		}
		f.products = append(f.products, product)
		f.byID[product.ID.Hex()] = product
	}

	return f, nil
}

func (f *Fallback) Len() int {
	return len(f.products)
}

// Products 回傳copy, fallback本身保持唯讀
func (f *Fallback) Products() []model.Product {
	out := make([]model.Product, len(f.products))
	copy(out, f.products)
	return out
}

func (f *Fallback) GetByID(id string) (*model.Product, bool) {
	p, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// Filter 套用跟db查詢一致的兩個條件
func (f *Fallback) Filter(filter model.ProductFilter) []model.Product {
	out := []model.Product{}
	search := strings.ToLower(filter.Search)
	for _, p := range f.products {
		if filter.Category != "" && filter.Category != "All" && p.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
