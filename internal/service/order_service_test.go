package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc         *OrderService
	orderRepo   *fakeOrderRepo
	productRepo *fakeProductRepo
	cartRepo    *fakeCartRepo
	producer    *fakeOrderProducer
}

func newOrderFixture() *orderFixture {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	cartRepo := newFakeCartRepo()
	producer := &fakeOrderProducer{}
	return &orderFixture{
		svc:         NewOrderService(orderRepo, productRepo, cartRepo, producer, 60),
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		producer:    producer,
	}
}

var testPrincipal = model.Principal{ID: "u1", Email: "u1@example.com", Name: "User One", Role: model.RoleUser}

func validOrderParams(p model.Product, qty int) PlaceOrderParams {
	total := p.Price * float64(qty)
	return PlaceOrderParams{
		ProductID:       p.ID.Hex(),
		ProductTitle:    p.Title,
		ProductImage:    "img.png",
		UnitPrice:       floatPtr(p.Price),
		OrderedQuantity: intPtr(qty),
		TotalItemPrice:  floatPtr(total),
		CustomerName:    "User One",
		PhysicalAddress: "42 Some Street",
		Phone:           "01700000000",
		PaymentMethod:   string(model.PaymentCashOnDelivery),
	}
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5})

	order, err := f.svc.PlaceOrder(ctx, testPrincipal, validOrderParams(p, 3))
	require.NoError(t, err)

	assert.Equal(t, 60.0, order.TotalItemPrice)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "u1", order.UserID)

	left, err := f.productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, left.Stock)

	assert.Len(t, f.producer.placed, 1)
}

// 庫存1, 兩次連續下單qty=1: 第一次成功stock→0, 第二次失敗stock不變
func TestPlaceOrderSequentialStockExhaustion(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 1})

	_, err := f.svc.PlaceOrder(ctx, testPrincipal, validOrderParams(p, 1))
	require.NoError(t, err)

	_, err = f.svc.PlaceOrder(ctx, testPrincipal, validOrderParams(p, 1))
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))
	assert.Contains(t, err.Error(), "Not enough stock for Lamp. Available: 0")

	left, err := f.productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, left.Stock)

	orders, err := f.orderRepo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlaceOrderInsufficientStockLeavesStockUnchanged(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 2})

	_, err := f.svc.PlaceOrder(ctx, testPrincipal, validOrderParams(p, 3))
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))

	left, err := f.productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, left.Stock)
}

func TestPlaceOrderTotalComputedServerSide(t *testing.T) {
	f := newOrderFixture()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 19.99, Stock: 10})

	params := validOrderParams(p, 3)
	// caller亂給的total不被採用
	params.TotalItemPrice = floatPtr(1)

	order, err := f.svc.PlaceOrder(context.Background(), testPrincipal, params)
	require.NoError(t, err)
	assert.Equal(t, 59.97, order.TotalItemPrice)
}

func TestPlaceOrderElectronicStatusDerivation(t *testing.T) {
	f := newOrderFixture()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 10})

	params := validOrderParams(p, 1)
	params.PaymentMethod = string(model.PaymentBkash)
	params.TransactionID = strPtr("TX123")
	params.SenderNumber = strPtr("01800000000")

	order, err := f.svc.PlaceOrder(context.Background(), testPrincipal, params)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaymentPending, order.Status)
	require.NotNil(t, order.TransactionID)
	assert.Equal(t, "TX123", *order.TransactionID)
}

func TestPlaceOrderCashOnDeliveryNullsPaymentFields(t *testing.T) {
	f := newOrderFixture()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 10})

	params := validOrderParams(p, 1)
	// COD給了transaction欄位也一律存null
	params.TransactionID = strPtr("TX123")
	params.SenderNumber = strPtr("01800000000")

	order, err := f.svc.PlaceOrder(context.Background(), testPrincipal, params)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Nil(t, order.TransactionID)
	assert.Nil(t, order.SenderNumber)
}

func TestPlaceOrderInvalidStatus(t *testing.T) {
	f := newOrderFixture()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 10})

	params := validOrderParams(p, 1)
	params.Status = "Shipped"

	_, err := f.svc.PlaceOrder(context.Background(), testPrincipal, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid order status provided.")

	// 驗證失敗在扣庫存之前
	left, err := f.productRepo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, left.Stock)
}

func TestPlaceOrderMissingFields(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceOrder(context.Background(), testPrincipal, PlaceOrderParams{ProductID: "x"})
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))
}

func TestPlaceOrderRestoresStockOnCreateFailure(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5})

	// 讓下一次Create直接失敗
	f.orderRepo.failAfter = 1
	f.orderRepo.creates = 1

	_, err := f.svc.PlaceOrder(ctx, testPrincipal, validOrderParams(p, 3))
	require.Error(t, err)

	left, err := f.productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, left.Stock)
}

func seedCheckoutCart(t *testing.T, f *orderFixture) (model.Product, model.Product) {
	t.Helper()
	ctx := context.Background()
	// 100打75折=75, 20原價
	p1 := f.productRepo.put(model.Product{Title: "Phone", Slug: "phone", Price: 100, DiscountPercentage: 25, Stock: 10, Image: "p.png"})
	p2 := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5, Image: "l.png"})

	cart := &model.Cart{UserID: "u1", Items: []model.CartItem{
		{ProductID: p1.ID, ProductTitle: p1.Title, Price: p1.Price, Quantity: 2},
		{ProductID: p2.ID, ProductTitle: p2.Title, Price: p2.Price, Quantity: 1},
	}}
	require.NoError(t, f.cartRepo.Save(ctx, cart))
	return p1, p2
}

func validCheckoutParams() CheckoutParams {
	return CheckoutParams{
		CustomerName:    "User One",
		PhysicalAddress: "42 Some Street",
		Phone:           "01700000000",
		PaymentMethod:   string(model.PaymentCashOnDelivery),
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p1, p2 := seedCheckoutCart(t, f)

	params := validCheckoutParams()
	params.CouponCode = "WELCOME10"

	result, err := f.svc.Checkout(ctx, testPrincipal, params)
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	require.Len(t, result.Orders, 2)
	for _, o := range result.Orders {
		assert.Equal(t, result.SessionID, o.SessionID)
		assert.Equal(t, model.OrderStatusPending, o.Status)
	}

	// subtotal = 75*2 + 20 = 170; -10% = 153; +60 = 213
	assert.Equal(t, 170.0, result.Subtotal)
	assert.Equal(t, 17.0, result.CouponDiscount)
	assert.Equal(t, 60.0, result.DeliveryCharge)
	assert.Equal(t, 213.0, result.Total)

	// 庫存扣掉
	left1, _ := f.productRepo.GetByID(ctx, p1.ID)
	left2, _ := f.productRepo.GetByID(ctx, p2.ID)
	assert.Equal(t, 8, left1.Stock)
	assert.Equal(t, 4, left2.Stock)

	// cart清空
	cart, err := f.cartRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	assert.Len(t, f.producer.placed, 2)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Checkout(context.Background(), testPrincipal, validCheckoutParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cart is empty.")
}

func TestCheckoutInvalidCoupon(t *testing.T) {
	f := newOrderFixture()
	seedCheckoutCart(t, f)

	params := validCheckoutParams()
	params.CouponCode = "BOGUS"

	_, err := f.svc.Checkout(context.Background(), testPrincipal, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid coupon code.")
}

// 第二條line庫存不足: 第一條line的扣庫存要還回去, 不留任何order
func TestCheckoutCompensatesOnStockFailure(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p1, p2 := seedCheckoutCart(t, f)

	// 把第二個商品庫存改到不夠
	_, err := f.productRepo.Update(ctx, p2.ID, model.ProductUpdate{Stock: intPtr(0)})
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, testPrincipal, validCheckoutParams())
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))

	left1, _ := f.productRepo.GetByID(ctx, p1.ID)
	assert.Equal(t, 10, left1.Stock, "first line decrement must be restored")

	orders, err := f.orderRepo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// cart保留原樣
	cart, err := f.cartRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

// order insert途中失敗: 所有庫存與已寫入的order都要rollback
func TestCheckoutCompensatesOnInsertFailure(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p1, p2 := seedCheckoutCart(t, f)

	f.orderRepo.failAfter = 1 // 第二筆Create失敗

	_, err := f.svc.Checkout(ctx, testPrincipal, validCheckoutParams())
	require.Error(t, err)

	left1, _ := f.productRepo.GetByID(ctx, p1.ID)
	left2, _ := f.productRepo.GetByID(ctx, p2.ID)
	assert.Equal(t, 10, left1.Stock)
	assert.Equal(t, 5, left2.Stock)

	orders, err := f.orderRepo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSetOrderStatus(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	p := f.productRepo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5})

	order, err := f.svc.PlaceOrder(ctx, testPrincipal, validOrderParams(p, 1))
	require.NoError(t, err)

	updated, err := f.svc.SetOrderStatus(ctx, order.ID.Hex(), string(model.OrderStatusDelivered))
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)
	assert.Len(t, f.producer.status, 1)

	_, err = f.svc.SetOrderStatus(ctx, order.ID.Hex(), "Shipped")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid order status provided.")

	_, err = f.svc.SetOrderStatus(ctx, "65f000000000000000000000", string(model.OrderStatusDelivered))
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.NotFoundCode))
}
