package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/fixture"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateProductParams struct {
	Title              string
	Price              *float64
	DiscountPercentage *float64
	Description        string
	Category           string
	Image              string
	Stock              *int
}

type ICatalogService interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, upd model.ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SeedIfEmpty(ctx context.Context) (int, error)
}

// CatalogService 商品讀寫
// read path在db unreachable時fallback到fixture, 寫入路徑沒有fallback
type CatalogService struct {
	productRepo db.IProductRepository
	fallback    *fixture.Fallback
	cache       *redis_repo.ProductCache // 可為nil
}

func NewCatalogService(productRepo db.IProductRepository, fallback *fixture.Fallback, cache *redis_repo.ProductCache) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		fallback:    fallback,
		cache:       cache,
	}
}

var _ ICatalogService = (*CatalogService)(nil)

func (s *CatalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		// 讀取路徑刻意犧牲一致性換可用性, db掛掉時用fixture撐住瀏覽
		if errors.Is(err, db.ErrUnavailable) && s.fallback != nil {
			return s.fallback.Filter(filter), nil
		}
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "Product not found")
		}
		if errors.Is(err, db.ErrUnavailable) && s.fallback != nil {
			if p, ok := s.fallback.GetByID(id); ok {
				return p, nil
			}
			return nil, er.New(er.NotFoundCode, "Product not found")
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, product)
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error) {
	if params.Title == "" || params.Price == nil || params.Description == "" ||
		params.Category == "" || params.Image == "" || params.Stock == nil {
		return nil, er.New(er.InvalidArgumentCode, "Please enter all required fields")
	}
	if *params.Price < 0 {
		return nil, er.New(er.InvalidArgumentCode, "Price must not be negative")
	}
	if *params.Stock < 0 {
		return nil, er.New(er.InvalidArgumentCode, "Stock must not be negative")
	}
	discount := 0.0
	if params.DiscountPercentage != nil {
		discount = *params.DiscountPercentage
	}
	if discount < 0 || discount > 100 {
		return nil, er.New(er.InvalidArgumentCode, "Discount percentage must be between 0 and 100")
	}

	slug := model.Slugify(params.Title)
	if _, err := s.productRepo.GetBySlug(ctx, slug); err == nil {
		return nil, er.New(er.ConflictCode, "Product with this title already exists (duplicate slug)")
	} else if !errors.Is(err, db.ErrProductNotFound) {
		return nil, err
	}

	product := &model.Product{
		Title:              params.Title,
		Slug:               slug,
		Price:              *params.Price,
		DiscountPercentage: discount,
		Description:        params.Description,
		Category:           params.Category,
		Image:              params.Image,
		Stock:              *params.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		// unique index是最後防線
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, er.New(er.ConflictCode, "Product with this title already exists (duplicate slug)")
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, upd model.ProductUpdate) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, er.New(er.InvalidArgumentCode, "Price must not be negative")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return nil, er.New(er.InvalidArgumentCode, "Stock must not be negative")
	}
	if upd.DiscountPercentage != nil && (*upd.DiscountPercentage < 0 || *upd.DiscountPercentage > 100) {
		return nil, er.New(er.InvalidArgumentCode, "Discount percentage must be between 0 and 100")
	}

	product, err := s.productRepo.Update(ctx, oid, upd)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "Product not found")
		}
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, er.New(er.ConflictCode, "Product with this title already exists (duplicate slug)")
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	// 不cascade: 既有Order/Review/Wishlist保留自己的快照
	if err := s.productRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return er.New(er.NotFoundCode, "Product not found")
		}
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}
	return nil
}

// SeedIfEmpty collection為空時用fixture初始化, 回傳seed筆數
func (s *CatalogService) SeedIfEmpty(ctx context.Context) (int, error) {
	if s.fallback == nil || s.fallback.Len() == 0 {
		return 0, nil
	}

	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	products := s.fallback.Products()
	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
