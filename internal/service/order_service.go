package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaceOrderParams struct {
	ProductID       string
	ProductTitle    string
	ProductImage    string
	UnitPrice       *float64
	OrderedQuantity *int
	TotalItemPrice  *float64
	CustomerName    string
	PhysicalAddress string
	MapEmbedLink    string
	Phone           string
	PaymentMethod   string
	TransactionID   *string
	SenderNumber    *string
	Status          string
}

type CheckoutParams struct {
	CustomerName    string
	PhysicalAddress string
	MapEmbedLink    string
	Phone           string
	PaymentMethod   string
	TransactionID   *string
	SenderNumber    *string
	CouponCode      string
}

// CheckoutResult 一次checkout session的彙總
type CheckoutResult struct {
	SessionID      string        `json:"sessionId"`
	Orders         []model.Order `json:"orders"`
	Subtotal       float64       `json:"subtotal"`
	CouponCode     string        `json:"couponCode,omitempty"`
	CouponDiscount float64       `json:"couponDiscount"`
	DeliveryCharge float64       `json:"deliveryCharge"`
	Total          float64       `json:"total"`
}

type IOrderService interface {
	PlaceOrder(ctx context.Context, principal model.Principal, params PlaceOrderParams) (*model.Order, error)
	Checkout(ctx context.Context, principal model.Principal, params CheckoutParams) (*CheckoutResult, error)
	ListUserOrders(ctx context.Context, userID string) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status string) (*model.Order, error)
}

type OrderService struct {
	orderRepo      db.IOrderRepository
	productRepo    db.IProductRepository
	cartRepo       db.ICartRepository
	producer       producer.IOrderEventProducer // 可為nil
	deliveryCharge float64
}

func NewOrderService(
	orderRepo db.IOrderRepository,
	productRepo db.IProductRepository,
	cartRepo db.ICartRepository,
	eventProducer producer.IOrderEventProducer,
	deliveryCharge float64,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		cartRepo:       cartRepo,
		producer:       eventProducer,
		deliveryCharge: deliveryCharge,
	}
}

var _ IOrderService = (*OrderService)(nil)

// PlaceOrder 下單一個line item
// 庫存用conditional decrement扣, 兩個併發請求不會同時通過檢查
func (s *OrderService) PlaceOrder(ctx context.Context, principal model.Principal, params PlaceOrderParams) (*model.Order, error) {
	if params.ProductID == "" || params.ProductTitle == "" || params.ProductImage == "" ||
		params.UnitPrice == nil || params.OrderedQuantity == nil || params.TotalItemPrice == nil ||
		params.CustomerName == "" || params.PhysicalAddress == "" || params.Phone == "" ||
		params.PaymentMethod == "" {
		return nil, er.New(er.InvalidArgumentCode, "Please provide all required order details including unit price, quantity, and total item price.")
	}

	oid, err := primitive.ObjectIDFromHex(params.ProductID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}
	quantity := *params.OrderedQuantity
	if quantity < 1 {
		return nil, er.New(er.InvalidArgumentCode, "Ordered quantity must be at least 1")
	}
	if *params.UnitPrice < 0 {
		return nil, er.New(er.InvalidArgumentCode, "Unit price must not be negative")
	}

	method := model.PaymentMethod(params.PaymentMethod)
	if !method.Valid() {
		return nil, er.New(er.InvalidArgumentCode, "Invalid payment method provided.")
	}
	status, err := resolveStatus(params.Status, method)
	if err != nil {
		return nil, err
	}

	if err := s.deductStock(ctx, oid, quantity); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:          principal.ID,
		Email:           principal.Email,
		CustomerName:    params.CustomerName,
		ProductID:       oid,
		ProductTitle:    params.ProductTitle,
		ProductImage:    params.ProductImage,
		UnitPrice:       *params.UnitPrice,
		OrderedQuantity: quantity,
		TotalItemPrice:  itemTotal(*params.UnitPrice, quantity),
		PhysicalAddress: params.PhysicalAddress,
		MapEmbedLink:    params.MapEmbedLink,
		Phone:           params.Phone,
		PaymentMethod:   method,
		TransactionID:   electronicOnly(method, params.TransactionID),
		SenderNumber:    electronicOnly(method, params.SenderNumber),
		Status:          status,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// 訂單沒寫進去就把庫存還回來
		_ = s.productRepo.RestoreStock(ctx, oid, quantity)
		return nil, err
	}

	if s.producer != nil {
		_ = s.producer.OrderPlaced(ctx, order)
	}
	return order, nil
}

// Checkout 整台購物車一次結帳, all-or-nothing
// 任一line失敗就補償先前的扣庫存與已寫入的訂單
func (s *OrderService) Checkout(ctx context.Context, principal model.Principal, params CheckoutParams) (*CheckoutResult, error) {
	if params.CustomerName == "" || params.PhysicalAddress == "" || params.Phone == "" || params.PaymentMethod == "" {
		return nil, er.New(er.InvalidArgumentCode, "Please provide all required checkout details.")
	}
	method := model.PaymentMethod(params.PaymentMethod)
	if !method.Valid() {
		return nil, er.New(er.InvalidArgumentCode, "Invalid payment method provided.")
	}
	couponPct := 0.0
	if params.CouponCode != "" {
		pct, ok := CouponPercent(params.CouponCode)
		if !ok {
			return nil, er.New(er.InvalidArgumentCode, "Invalid coupon code.")
		}
		couponPct = pct
	}

	cart, err := s.cartRepo.GetByUserID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return nil, er.New(er.InvalidArgumentCode, "Cart is empty.")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, er.New(er.InvalidArgumentCode, "Cart is empty.")
	}

	status, err := resolveStatus("", method)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	subtotal := decimal.NewFromInt(0)

	type reservation struct {
		productID primitive.ObjectID
		quantity  int
	}
	reserved := []reservation{}
	orders := []model.Order{}

	rollback := func() {
		for _, r := range reserved {
			_ = s.productRepo.RestoreStock(ctx, r.productID, r.quantity)
		}
		for i := range orders {
			if !orders[i].ID.IsZero() {
				_ = s.orderRepo.Delete(ctx, orders[i].ID)
			}
		}
	}

	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			rollback()
			if errors.Is(err, db.ErrProductNotFound) {
				return nil, er.Newf(er.NotFoundCode, "Product %s is no longer available.", item.ProductTitle)
			}
			return nil, err
		}

		if err := s.deductStock(ctx, item.ProductID, item.Quantity); err != nil {
			rollback()
			return nil, err
		}
		reserved = append(reserved, reservation{productID: item.ProductID, quantity: item.Quantity})

		unitPrice, _ := EffectivePrice(product.Price, product.DiscountPercentage).Round(2).Float64()
		lineTotal := LineTotal(product.Price, product.DiscountPercentage, item.Quantity)
		subtotal = subtotal.Add(lineTotal)

		orders = append(orders, model.Order{
			SessionID:       sessionID,
			UserID:          principal.ID,
			Email:           principal.Email,
			CustomerName:    params.CustomerName,
			ProductID:       product.ID,
			ProductTitle:    product.Title,
			ProductImage:    product.Image,
			UnitPrice:       unitPrice,
			OrderedQuantity: item.Quantity,
			TotalItemPrice:  itemTotal(unitPrice, item.Quantity),
			PhysicalAddress: params.PhysicalAddress,
			MapEmbedLink:    params.MapEmbedLink,
			Phone:           params.Phone,
			PaymentMethod:   method,
			TransactionID:   electronicOnly(method, params.TransactionID),
			SenderNumber:    electronicOnly(method, params.SenderNumber),
			Status:          status,
		})
	}

	for i := range orders {
		if err := s.orderRepo.Create(ctx, &orders[i]); err != nil {
			rollback()
			return nil, err
		}
	}

	cart.Items = []model.CartItem{}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	if s.producer != nil {
		for i := range orders {
			_ = s.producer.OrderPlaced(ctx, &orders[i])
		}
	}

	discount := subtotal.Mul(decimal.NewFromFloat(couponPct)).Div(decimal.NewFromInt(100))
	total := CheckoutTotal(subtotal, couponPct, s.deliveryCharge)

	subtotalF, _ := subtotal.Round(2).Float64()
	discountF, _ := discount.Round(2).Float64()
	totalF, _ := total.Round(2).Float64()

	return &CheckoutResult{
		SessionID:      sessionID,
		Orders:         orders,
		Subtotal:       subtotalF,
		CouponCode:     params.CouponCode,
		CouponDiscount: discountF,
		DeliveryCharge: s.deliveryCharge,
		Total:          totalF,
	}, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orderRepo.ListByUserID(ctx, userID)
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// SetOrderStatus 只驗證enum, 不限制轉移順序
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID string, status string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Order ID")
	}
	newStatus := model.OrderStatus(status)
	if !newStatus.Valid() {
		return nil, er.New(er.InvalidArgumentCode, "Invalid order status provided.")
	}

	order, err := s.orderRepo.UpdateStatus(ctx, oid, newStatus)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, er.New(er.NotFoundCode, "Order not found.")
		}
		return nil, err
	}

	if s.producer != nil {
		_ = s.producer.OrderStatusChanged(ctx, orderID, newStatus)
	}
	return order, nil
}

// deductStock 失敗時補上可讀的錯誤訊息
func (s *OrderService) deductStock(ctx context.Context, productID primitive.ObjectID, quantity int) error {
	err := s.productRepo.DeductStock(ctx, productID, quantity)
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrProductNotFound) {
		return er.New(er.NotFoundCode, "Product not found.")
	}
	if errors.Is(err, db.ErrStockNotEnough) {
		if product, perr := s.productRepo.GetByID(ctx, productID); perr == nil {
			return er.Newf(er.InvalidArgumentCode, "Not enough stock for %s. Available: %d", product.Title, product.Stock)
		}
		return er.New(er.InvalidArgumentCode, "Not enough stock.")
	}
	return err
}

// resolveStatus caller有給就驗證後採用, 沒給就由付款方式推導
func resolveStatus(supplied string, method model.PaymentMethod) (model.OrderStatus, error) {
	if supplied != "" {
		status := model.OrderStatus(supplied)
		if !status.Valid() {
			return "", er.New(er.InvalidArgumentCode, "Invalid order status provided.")
		}
		return status, nil
	}
	if method.Electronic() {
		return model.OrderStatusPaymentPending, nil
	}
	return model.OrderStatusPending, nil
}

// electronicOnly 非電子支付一律存null, 不管caller給了什麼
func electronicOnly(method model.PaymentMethod, v *string) *string {
	if !method.Electronic() {
		return nil
	}
	return v
}

func itemTotal(unitPrice float64, quantity int) float64 {
	total, _ := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).Round(2).Float64()
	return total
}
