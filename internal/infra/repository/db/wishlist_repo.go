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

type IWishlistRepository interface {
	Create(ctx context.Context, item *model.WishlistItem) error
	Delete(ctx context.Context, userID string, productID primitive.ObjectID) error
	ListByUser(ctx context.Context, userID string) ([]model.WishlistItem, error)
	Exists(ctx context.Context, userID string, productID primitive.ObjectID) (bool, error)
}

type WishlistRepo struct {
	coll *mongo.Collection
}

func NewWishlistRepo(database *mongo.Database) (*WishlistRepo, error) {
	coll := database.Collection("wishlists")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &WishlistRepo{coll: coll}, nil
}

var _ IWishlistRepository = (*WishlistRepo)(nil)

func (r *WishlistRepo) Create(ctx context.Context, item *model.WishlistItem) error {
	item.CreatedAt = time.Now().UTC()

	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

func (r *WishlistRepo) Delete(ctx context.Context, userID string, productID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrWishlistNotFound
	}
	return nil
}

func (r *WishlistRepo) ListByUser(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	cursor, err := r.coll.Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	items := []model.WishlistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, mapErr(err)
	}
	return items, nil
}

func (r *WishlistRepo) Exists(ctx context.Context, userID string, productID primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}
