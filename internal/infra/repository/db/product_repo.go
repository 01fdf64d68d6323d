package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	CreateBatch(ctx context.Context, products []model.Product) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, upd model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeductStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	RestoreStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type ProductRepo struct {
	coll *mongo.Collection
}

func NewProductRepo(database *mongo.Database) (*ProductRepo, error) {
	coll := database.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &ProductRepo{coll: coll}, nil
}

var _ IProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *ProductRepo) CreateBatch(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return mapErr(err)
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapErr(err)
}

func (r *ProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, mapErr(err)
	}
	return &product, nil
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, mapErr(err)
	}
	return &product, nil
}

func (r *ProductRepo) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := bson.M{}
	if filter.Category != "" && filter.Category != "All" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, mapErr(err)
	}
	return products, nil
}

func (r *ProductRepo) Update(ctx context.Context, id primitive.ObjectID, upd model.ProductUpdate) (*model.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
		set["slug"] = model.Slugify(*upd.Title)
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.DiscountPercentage != nil {
		set["discountPercentage"] = *upd.DiscountPercentage
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}

	var product model.Product
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, mapErr(err)
	}
	return &product, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeductStock 單一conditional update完成檢查加扣庫存, 併發下不會超賣
func (r *ProductRepo) DeductStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		// 分辨是商品不存在還是庫存不足
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return mapErr(err)
		}
		if n == 0 {
			return ErrProductNotFound
		}
		return ErrStockNotEnough
	}
	return nil
}

func (r *ProductRepo) RestoreStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": quantity},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
