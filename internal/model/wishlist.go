package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem 每個 (userId, productId) 最多一筆
type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"userId" json:"userId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type PopulatedWishlistItem struct {
	ID        primitive.ObjectID `json:"_id"`
	UserID    string             `json:"userId"`
	Product   ProductBrief       `json:"productId"`
	CreatedAt time.Time          `json:"createdAt"`
}
