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

type IReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByUserAndProduct(ctx context.Context, userID string, productID primitive.ObjectID) (*model.Review, error)
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]model.Review, error)
	AppendReply(ctx context.Context, reviewID primitive.ObjectID, reply model.Reply) (*model.Review, error)
}

type ReviewRepo struct {
	coll *mongo.Collection
}

func NewReviewRepo(database *mongo.Database) (*ReviewRepo, error) {
	coll := database.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &ReviewRepo{coll: coll}, nil
}

var _ IReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) Create(ctx context.Context, review *model.Review) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Replies == nil {
		review.Replies = []model.Reply{}
	}

	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *ReviewRepo) GetByUserAndProduct(ctx context.Context, userID string, productID primitive.ObjectID) (*model.Review, error) {
	var review model.Review
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "productId": productID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReviewNotFound
		}
		return nil, mapErr(err)
	}
	return &review, nil
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]model.Review, error) {
	cursor, err := r.coll.Find(
		ctx,
		bson.M{"productId": productID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	reviews := []model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, mapErr(err)
	}
	return reviews, nil
}

func (r *ReviewRepo) AppendReply(ctx context.Context, reviewID primitive.ObjectID, reply model.Reply) (*model.Review, error) {
	var review model.Review
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": reviewID},
		bson.M{
			"$push": bson.M{"replies": reply},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReviewNotFound
		}
		return nil, mapErr(err)
	}
	return &review, nil
}
