package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func newCatalogFixture() (*CatalogService, *fakeProductRepo) {
	repo := newFakeProductRepo()
	return NewCatalogService(repo, nil, nil), repo
}

func TestCreateProductSlug(t *testing.T) {
	svc, _ := newCatalogFixture()

	product, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Title:       "  Wireless Mouse (Pro)! ",
		Price:       floatPtr(29.9),
		Description: "desc",
		Category:    "electronics",
		Image:       "img.png",
		Stock:       intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "wireless-mouse-pro", product.Slug)
	assert.False(t, product.ID.IsZero())
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	params := CreateProductParams{
		Title:       "Lamp",
		Price:       floatPtr(20),
		Description: "desc",
		Category:    "home",
		Image:       "img.png",
		Stock:       intPtr(5),
	}
	_, err := svc.CreateProduct(ctx, params)
	require.NoError(t, err)

	// "LAMP!!" slugify後撞同一個slug
	params.Title = "LAMP!!"
	_, err = svc.CreateProduct(ctx, params)
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.ConflictCode))
	assert.Contains(t, err.Error(), "duplicate slug")
}

func TestCreateProductMissingFields(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.CreateProduct(context.Background(), CreateProductParams{Title: "x"})
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))
	assert.Contains(t, err.Error(), "Please enter all required fields")
}

func TestGetProductInvalidID(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.GetProduct(context.Background(), "not-an-objectid")
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))
	assert.Contains(t, err.Error(), "Invalid Product ID")
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.GetProduct(context.Background(), "65f000000000000000000000")
	require.Error(t, err)
	assert.True(t, er.IsCode(err, er.NotFoundCode))
}

func TestUpdateProductPresenceSemantics(t *testing.T) {
	svc, repo := newCatalogFixture()
	ctx := context.Background()

	p := repo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5, Category: "home"})

	// stock設為0是合法的部分更新, 其他欄位不動
	updated, err := svc.UpdateProduct(ctx, p.ID.Hex(), model.ProductUpdate{Stock: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 20.0, updated.Price)
	assert.Equal(t, "Lamp", updated.Title)
}

func TestUpdateProductRangeChecks(t *testing.T) {
	svc, repo := newCatalogFixture()
	p := repo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5})

	_, err := svc.UpdateProduct(context.Background(), p.ID.Hex(), model.ProductUpdate{Price: floatPtr(-1)})
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))

	_, err = svc.UpdateProduct(context.Background(), p.ID.Hex(), model.ProductUpdate{DiscountPercentage: floatPtr(150)})
	assert.True(t, er.IsCode(err, er.InvalidArgumentCode))
}

func TestDeleteProductNoCascade(t *testing.T) {
	svc, repo := newCatalogFixture()
	ctx := context.Background()

	p := repo.put(model.Product{Title: "Lamp", Slug: "lamp", Price: 20, Stock: 5})
	orderRepo := newFakeOrderRepo()
	order := &model.Order{UserID: "u1", ProductID: p.ID, ProductTitle: p.Title, OrderedQuantity: 1}
	require.NoError(t, orderRepo.Create(ctx, order))

	require.NoError(t, svc.DeleteProduct(ctx, p.ID.Hex()))

	// 商品不見了, 但訂單紀錄保留
	_, err := svc.GetProduct(ctx, p.ID.Hex())
	assert.True(t, er.IsCode(err, er.NotFoundCode))

	kept, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, kept.ProductTitle)
}

func TestListProductsFallbackWhenUnavailable(t *testing.T) {
	repo := newFakeProductRepo()
	fallback := loadTestFallback(t)
	svc := NewCatalogService(repo, fallback, nil)

	repo.unavailable = true

	products, err := svc.ListProducts(context.Background(), model.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, fallback.Len(), len(products))
}

func TestGetProductFallbackWhenUnavailable(t *testing.T) {
	repo := newFakeProductRepo()
	fallback := loadTestFallback(t)
	svc := NewCatalogService(repo, fallback, nil)

	repo.unavailable = true

	want := fallback.Products()[0]
	got, err := svc.GetProduct(context.Background(), want.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
}

func TestCreateProductNoFallbackOnUnavailable(t *testing.T) {
	repo := newFakeProductRepo()
	fallback := loadTestFallback(t)
	svc := NewCatalogService(repo, fallback, nil)

	repo.unavailable = true

	// 寫入路徑不fallback, 錯誤直接浮上來
	_, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Title:       "Lamp",
		Price:       floatPtr(20),
		Description: "desc",
		Category:    "home",
		Image:       "img.png",
		Stock:       intPtr(5),
	})
	require.Error(t, err)
	assert.False(t, er.IsCode(err, er.NotFoundCode))
}

func TestSeedIfEmpty(t *testing.T) {
	repo := newFakeProductRepo()
	fallback := loadTestFallback(t)
	svc := NewCatalogService(repo, fallback, nil)
	ctx := context.Background()

	n, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, fallback.Len(), n)

	// 已有資料就不再seed
	n, err = svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
