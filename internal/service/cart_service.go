package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ICartService interface {
	GetCart(ctx context.Context, userID string) (*model.PopulatedCart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*model.PopulatedCart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*model.PopulatedCart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*model.PopulatedCart, error)
	ClearCart(ctx context.Context, userID string) (*model.PopulatedCart, error)
}

// CartService 每次mutation都會對catalog重新驗證庫存
type CartService struct {
	cartRepo    db.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(cartRepo db.ICartRepository, productRepo db.IProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

var _ ICartService = (*CartService)(nil)

// GetCart 還沒有cart時回傳空cart, 不是error
func (s *CartService) GetCart(ctx context.Context, userID string) (*model.PopulatedCart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return &model.PopulatedCart{UserID: userID, Items: []model.PopulatedCartItem{}}, nil
		}
		return nil, err
	}
	return s.populate(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*model.PopulatedCart, error) {
	if quantity < 1 {
		return nil, er.New(er.InvalidArgumentCode, "Quantity must be at least 1")
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	product, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "Product not found.")
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, er.Newf(er.InvalidArgumentCode, "Not enough stock for %s. Available: %d", product.Title, product.Stock)
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, db.ErrCartNotFound) {
			return nil, err
		}
		cart = &model.Cart{UserID: userID, Items: []model.CartItem{}}
	}

	idx := findItem(cart.Items, oid)
	if idx >= 0 {
		// 同商品再次加入是累加, 不是覆蓋
		current := cart.Items[idx].Quantity
		newQuantity := current + quantity
		if product.Stock < newQuantity {
			return nil, er.Newf(er.InvalidArgumentCode, "Cannot add more. Only %d more of %s available.", product.Stock-current, product.Title)
		}
		cart.Items[idx].Quantity = newQuantity
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID:    oid,
			ProductTitle: product.Title,
			ProductImage: product.Image,
			Price:        product.Price,
			Quantity:     quantity,
		})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// UpdateItemQuantity quantity <= 0 視為移除, server端強制這個語義
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*model.PopulatedCart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return nil, er.New(er.NotFoundCode, "Cart not found for this user.")
		}
		return nil, err
	}

	idx := findItem(cart.Items, oid)
	if idx < 0 {
		return nil, er.New(er.NotFoundCode, "Item not found in cart.")
	}

	product, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "Product not found.")
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, er.Newf(er.InvalidArgumentCode, "Not enough stock for %s. Available: %d", product.Title, product.Stock)
	}

	cart.Items[idx].Quantity = quantity

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// RemoveItem item不存在也不報錯, 是idempotent的filter移除
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*model.PopulatedCart, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return nil, er.New(er.NotFoundCode, "Cart not found for this user.")
		}
		return nil, err
	}

	filtered := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != oid {
			filtered = append(filtered, item)
		}
	}
	cart.Items = filtered

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// ClearCart 清空items, cart document保留; 沒有cart時回傳空結果
func (s *CartService) ClearCart(ctx context.Context, userID string) (*model.PopulatedCart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return &model.PopulatedCart{UserID: userID, Items: []model.PopulatedCartItem{}}, nil
		}
		return nil, err
	}

	cart.Items = []model.CartItem{}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// populate 回應時join live product欄位, 快照欄位照樣保留
func (s *CartService) populate(ctx context.Context, cart *model.Cart) (*model.PopulatedCart, error) {
	populated := &model.PopulatedCart{
		UserID: cart.UserID,
		Items:  make([]model.PopulatedCartItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		entry := model.PopulatedCartItem{CartItem: item}
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err == nil {
			entry.Product = &model.ProductBrief{
				ID:                 product.ID,
				Title:              product.Title,
				Price:              product.Price,
				Image:              product.Image,
				Category:           product.Category,
				Stock:              product.Stock,
				DiscountPercentage: product.DiscountPercentage,
			}
		} else if !errors.Is(err, db.ErrProductNotFound) {
			return nil, err
		}
		populated.Items = append(populated.Items, entry)
	}
	return populated, nil
}

func findItem(items []model.CartItem, productID primitive.ObjectID) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
