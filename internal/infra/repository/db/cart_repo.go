package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ICartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
}

type CartRepo struct {
	coll *mongo.Collection
}

func NewCartRepo(database *mongo.Database) (*CartRepo, error) {
	coll := database.Collection("carts")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &CartRepo{coll: coll}, nil
}

var _ ICartRepository = (*CartRepo)(nil)

func (r *CartRepo) GetByUserID(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCartNotFound
		}
		return nil, mapErr(err)
	}
	return &cart, nil
}

// Save upsert by userId, 一個user只會有一份cart
func (r *CartRepo) Save(ctx context.Context, cart *model.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}

	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"userId": cart.UserID},
		bson.M{
			"$set": bson.M{
				"items":     cart.Items,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"userId":    cart.UserID,
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	return mapErr(err)
}
