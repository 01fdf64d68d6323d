package model

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rating struct {
	Rate  float64 `bson:"rate" json:"rate"`
	Count int     `bson:"count" json:"count"`
}

type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title              string             `bson:"title" json:"title"`
	Slug               string             `bson:"slug" json:"slug"`
	Price              float64            `bson:"price" json:"price"`
	DiscountPercentage float64            `bson:"discountPercentage" json:"discountPercentage"`
	Description        string             `bson:"description" json:"description"`
	Category           string             `bson:"category" json:"category"`
	Image              string             `bson:"image" json:"image"`
	Stock              int                `bson:"stock" json:"stock"`
	Rating             Rating             `bson:"rating" json:"rating"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductUpdate 部分更新用, nil代表該欄位未提供
// price/stock為0是合法值, 必須用presence判斷而不是zero value
type ProductUpdate struct {
	Title              *string
	Price              *float64
	DiscountPercentage *float64
	Description        *string
	Category           *string
	Image              *string
	Stock              *int
}

type ProductFilter struct {
	Category string
	Search   string
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title, collapses non-alphanumerics to hyphens
// and trims leading/trailing hyphens.
func Slugify(title string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// EffectivePrice 套用折扣後的單價
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price * (1 - p.DiscountPercentage/100)
	}
	return p.Price
}
