package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reply struct {
	UserID       string    `bson:"userId" json:"userId"`
	UserName     string    `bson:"userName" json:"userName"`
	UserPhotoURL string    `bson:"userPhotoURL" json:"userPhotoURL"`
	ReplyText    string    `bson:"replyText" json:"replyText"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Review 每個 (userId, productId) 最多一筆
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	UserID       string             `bson:"userId" json:"userId"`
	UserName     string             `bson:"userName" json:"userName"`
	UserPhotoURL string             `bson:"userPhotoURL" json:"userPhotoURL"`
	Rating       int                `bson:"rating" json:"rating"`
	Comment      string             `bson:"comment" json:"comment"`
	Replies      []Reply            `bson:"replies" json:"replies"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
