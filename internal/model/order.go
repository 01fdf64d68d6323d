package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPaymentPending OrderStatus = "Payment Pending"
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPaymentPending, OrderStatusPending, OrderStatusProcessing,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentBkash          PaymentMethod = "bKash"
	PaymentNagad          PaymentMethod = "Nagad"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentBkash, PaymentNagad:
		return true
	}
	return false
}

// Electronic 是否為電子支付 (需要transactionId/senderNumber)
func (m PaymentMethod) Electronic() bool {
	return m == PaymentBkash || m == PaymentNagad
}

// Order 一筆訂單對應一個商品line item
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SessionID       string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
	Email           string             `bson:"email" json:"email"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	ProductID       primitive.ObjectID `bson:"productId" json:"productId"`
	ProductTitle    string             `bson:"productTitle" json:"productTitle"`
	ProductImage    string             `bson:"productImage" json:"productImage"`
	UnitPrice       float64            `bson:"unitPrice" json:"unitPrice"`
	OrderedQuantity int                `bson:"orderedQuantity" json:"orderedQuantity"`
	TotalItemPrice  float64            `bson:"totalItemPrice" json:"totalItemPrice"`
	PhysicalAddress string             `bson:"physicalAddress" json:"physicalAddress"`
	MapEmbedLink    string             `bson:"mapEmbedLink" json:"mapEmbedLink"`
	Phone           string             `bson:"phone" json:"phone"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID   *string            `bson:"transactionId" json:"transactionId"`
	SenderNumber    *string            `bson:"senderNumber" json:"senderNumber"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
