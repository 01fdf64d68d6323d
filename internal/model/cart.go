package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem 的 price/title/image 是加入當下的快照, 不是live join
type CartItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	ProductTitle string             `bson:"productTitle" json:"productTitle"`
	ProductImage string             `bson:"productImage" json:"productImage"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
}

// Cart 一個user最多一份 (unique userId)
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductBrief 回應時join的live product欄位
type ProductBrief struct {
	ID                 primitive.ObjectID `json:"_id"`
	Title              string             `json:"title"`
	Price              float64            `json:"price"`
	Image              string             `json:"image"`
	Category           string             `json:"category,omitempty"`
	Stock              int                `json:"stock"`
	DiscountPercentage float64            `json:"discountPercentage"`
}

type PopulatedCartItem struct {
	CartItem
	// Product 為nil代表商品已被刪除, 只剩快照欄位
	Product *ProductBrief `json:"product"`
}

type PopulatedCart struct {
	UserID string              `json:"userId"`
	Items  []PopulatedCartItem `json:"items"`
}
