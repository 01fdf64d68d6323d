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

type IOrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepo(database *mongo.Database) (*OrderRepo, error) {
	coll := database.Collection("orders")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}

	return &OrderRepo{coll: coll}, nil
}

var _ IOrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, order *model.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var order model.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, mapErr(err)
	}
	return &order, nil
}

func (r *OrderRepo) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepo) list(ctx context.Context, query bson.M) ([]model.Order, error) {
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	orders := []model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, mapErr(err)
	}
	return orders, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, mapErr(err)
	}
	return &order, nil
}

// Delete 只用在checkout session補償, 一般訂單不會被刪除
func (r *OrderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return mapErr(err)
}
