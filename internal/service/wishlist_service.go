package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IWishlistService interface {
	AddItem(ctx context.Context, userID, productID string) (*model.WishlistItem, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	ListItems(ctx context.Context, userID string) ([]model.PopulatedWishlistItem, error)
	Status(ctx context.Context, userID, productID string) (bool, error)
}

type WishlistService struct {
	wishlistRepo db.IWishlistRepository
	productRepo  db.IProductRepository
}

func NewWishlistService(wishlistRepo db.IWishlistRepository, productRepo db.IProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

var _ IWishlistService = (*WishlistService)(nil)

func (s *WishlistService) AddItem(ctx context.Context, userID, productID string) (*model.WishlistItem, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	if _, err := s.productRepo.GetByID(ctx, oid); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "Product not found.")
		}
		return nil, err
	}

	item := &model.WishlistItem{UserID: userID, ProductID: oid}
	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, er.New(er.ConflictCode, "Product already in wishlist.")
		}
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	if err := s.wishlistRepo.Delete(ctx, userID, oid); err != nil {
		if errors.Is(err, db.ErrWishlistNotFound) {
			return er.New(er.NotFoundCode, "Product not found in wishlist.")
		}
		return err
	}
	return nil
}

// ListItems join live product, 已刪除商品的entry直接略過
func (s *WishlistService) ListItems(ctx context.Context, userID string) ([]model.PopulatedWishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	populated := make([]model.PopulatedWishlistItem, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, db.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		populated = append(populated, model.PopulatedWishlistItem{
			ID:     item.ID,
			UserID: item.UserID,
			Product: model.ProductBrief{
				ID:                 product.ID,
				Title:              product.Title,
				Price:              product.Price,
				Image:              product.Image,
				Category:           product.Category,
				Stock:              product.Stock,
				DiscountPercentage: product.DiscountPercentage,
			},
			CreatedAt: item.CreatedAt,
		})
	}
	return populated, nil
}

func (s *WishlistService) Status(ctx context.Context, userID, productID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return false, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}
	return s.wishlistRepo.Exists(ctx, userID, oid)
}
