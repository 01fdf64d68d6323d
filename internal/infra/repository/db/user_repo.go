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

// UserUpdate nil代表該欄位未提供
type UserUpdate struct {
	Email       *string
	Name        *string
	PhotoURL    *string
	PhoneNumber *string
}

type IUserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUID(ctx context.Context, uid string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, uid string, upd UserUpdate) (*model.User, error)
	UpdateStatus(ctx context.Context, uid string, status model.UserStatus) (*model.User, error)
	UpdateRole(ctx context.Context, uid string, role model.Role) (*model.User, error)
}

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(database *mongo.Database) (*UserRepo, error) {
	coll := database.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, err
	}

	return &UserRepo{coll: coll}, nil
}

var _ IUserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}
	if user.Addresses == nil {
		user.Addresses = []string{}
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *UserRepo) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, mapErr(err)
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, uid string, upd UserUpdate) (*model.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.PhotoURL != nil {
		set["photoURL"] = *upd.PhotoURL
	}
	if upd.PhoneNumber != nil {
		set["phoneNumber"] = *upd.PhoneNumber
	}

	return r.findOneAndSet(ctx, uid, set)
}

func (r *UserRepo) UpdateStatus(ctx context.Context, uid string, status model.UserStatus) (*model.User, error) {
	return r.findOneAndSet(ctx, uid, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

func (r *UserRepo) UpdateRole(ctx context.Context, uid string, role model.Role) (*model.User, error) {
	return r.findOneAndSet(ctx, uid, bson.M{"role": role, "updatedAt": time.Now().UTC()})
}

func (r *UserRepo) findOneAndSet(ctx context.Context, uid string, set bson.M) (*model.User, error) {
	var user model.User
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"uid": uid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, mapErr(err)
	}
	return &user, nil
}
