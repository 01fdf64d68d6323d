package service

import (
	"context"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// in-memory fakes, 行為對齊mongo repo的sentinel語義

type fakeProductRepo struct {
	mu          sync.Mutex
	products    map[primitive.ObjectID]model.Product
	unavailable bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]model.Product{}}
}

var _ db.IProductRepository = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) put(p model.Product) model.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	if f.unavailable {
		return db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == product.Slug {
			return db.ErrDuplicateKey
		}
	}
	product.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) CreateBatch(ctx context.Context, products []model.Product) error {
	for i := range products {
		if err := f.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductRepo) Count(_ context.Context) (int64, error) {
	if f.unavailable {
		return 0, db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	if f.unavailable {
		return nil, db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	if f.unavailable {
		return nil, db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			out := p
			return &out, nil
		}
	}
	return nil, db.ErrProductNotFound
}

func (f *fakeProductRepo) List(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if f.unavailable {
		return nil, db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Product{}
	for _, p := range f.products {
		if filter.Category != "" && filter.Category != "All" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, upd model.ProductUpdate) (*model.Product, error) {
	if f.unavailable {
		return nil, db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
		p.Slug = model.Slugify(*upd.Title)
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.DiscountPercentage != nil {
		p.DiscountPercentage = *upd.DiscountPercentage
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	p.UpdatedAt = time.Now().UTC()
	f.products[id] = p
	return &p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if f.unavailable {
		return db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return db.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) DeductStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	if f.unavailable {
		return db.ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return db.ErrProductNotFound
	}
	if p.Stock < quantity {
		return db.ErrStockNotEnough
	}
	p.Stock -= quantity
	f.products[id] = p
	return nil
}

func (f *fakeProductRepo) RestoreStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return db.ErrProductNotFound
	}
	p.Stock += quantity
	f.products[id] = p
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]model.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]model.Cart{}}
}

var _ db.ICartRepository = (*fakeCartRepo)(nil)

func (f *fakeCartRepo) GetByUserID(_ context.Context, userID string) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, db.ErrCartNotFound
	}
	out := cart
	out.Items = append([]model.CartItem{}, cart.Items...)
	return &out, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *model.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *cart
	stored.Items = append([]model.CartItem{}, cart.Items...)
	stored.UpdatedAt = time.Now().UTC()
	f.carts[cart.UserID] = stored
	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[primitive.ObjectID]model.Order
	failAfter int // 第N+1次Create回error, 0表示不失敗
	creates   int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]model.Order{}}
}

var _ db.IOrderRepository = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) Create(_ context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failAfter > 0 && f.creates > f.failAfter {
		return db.ErrUnavailable
	}
	order.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	return &o, nil
}

func (f *fakeOrderRepo) ListByUserID(_ context.Context, userID string) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Order{}
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status model.OrderStatus) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	f.orders[id] = o
	return &o, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return db.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

type reviewKey struct {
	userID    string
	productID primitive.ObjectID
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[reviewKey]model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[reviewKey]model.Review{}}
}

var _ db.IReviewRepository = (*fakeReviewRepo)(nil)

func (f *fakeReviewRepo) Create(_ context.Context, review *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := reviewKey{userID: review.UserID, productID: review.ProductID}
	if _, ok := f.reviews[key]; ok {
		return db.ErrDuplicateKey
	}
	review.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Replies == nil {
		review.Replies = []model.Reply{}
	}
	f.reviews[key] = *review
	return nil
}

func (f *fakeReviewRepo) GetByUserAndProduct(_ context.Context, userID string, productID primitive.ObjectID) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[reviewKey{userID: userID, productID: productID}]
	if !ok {
		return nil, db.ErrReviewNotFound
	}
	return &r, nil
}

func (f *fakeReviewRepo) ListByProduct(_ context.Context, productID primitive.ObjectID) ([]model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Review{}
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) AppendReply(_ context.Context, reviewID primitive.ObjectID, reply model.Reply) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, r := range f.reviews {
		if r.ID == reviewID {
			r.Replies = append(r.Replies, reply)
			r.UpdatedAt = time.Now().UTC()
			f.reviews[key] = r
			return &r, nil
		}
	}
	return nil, db.ErrReviewNotFound
}

type fakeWishlistRepo struct {
	mu    sync.Mutex
	items map[reviewKey]model.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{items: map[reviewKey]model.WishlistItem{}}
}

var _ db.IWishlistRepository = (*fakeWishlistRepo)(nil)

func (f *fakeWishlistRepo) Create(_ context.Context, item *model.WishlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := reviewKey{userID: item.UserID, productID: item.ProductID}
	if _, ok := f.items[key]; ok {
		return db.ErrDuplicateKey
	}
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now().UTC()
	f.items[key] = *item
	return nil
}

func (f *fakeWishlistRepo) Delete(_ context.Context, userID string, productID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := reviewKey{userID: userID, productID: productID}
	if _, ok := f.items[key]; !ok {
		return db.ErrWishlistNotFound
	}
	delete(f.items, key)
	return nil
}

func (f *fakeWishlistRepo) ListByUser(_ context.Context, userID string) ([]model.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.WishlistItem{}
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) Exists(_ context.Context, userID string, productID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[reviewKey{userID: userID, productID: productID}]
	return ok, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

var _ db.IUserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.UID]; ok {
		return db.ErrDuplicateKey
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}
	f.users[user.UID] = *user
	return nil
}

func (f *fakeUserRepo) GetByUID(_ context.Context, uid string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, uid string, upd db.UserUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PhotoURL != nil {
		u.PhotoURL = *upd.PhotoURL
	}
	if upd.PhoneNumber != nil {
		u.PhoneNumber = *upd.PhoneNumber
	}
	u.UpdatedAt = time.Now().UTC()
	f.users[uid] = u
	return &u, nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, uid string, status model.UserStatus) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	u.Status = status
	f.users[uid] = u
	return &u, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, uid string, role model.Role) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	u.Role = role
	f.users[uid] = u
	return &u, nil
}

type fakeOrderProducer struct {
	mu     sync.Mutex
	placed []string
	status []string
}

func (f *fakeOrderProducer) OrderPlaced(_ context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = append(f.placed, order.ID.Hex())
	return nil
}

func (f *fakeOrderProducer) OrderStatusChanged(_ context.Context, orderID string, status model.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = append(f.status, orderID+":"+string(status))
	return nil
}

func (f *fakeOrderProducer) Close() error { return nil }
