package dto

// pointer欄位區分「沒給」跟「給了zero value」

type CreateProductDTO struct {
	Title              string   `json:"title"`
	Price              *float64 `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Image              string   `json:"image"`
	Stock              *int     `json:"stock"`
}

type UpdateProductDTO struct {
	Title              *string  `json:"title"`
	Price              *float64 `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	Description        *string  `json:"description"`
	Category           *string  `json:"category"`
	Image              *string  `json:"image"`
	Stock              *int     `json:"stock"`
}

type AddCartItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity *int `json:"quantity"`
}

type PlaceOrderDTO struct {
	ProductID       string   `json:"productId"`
	ProductTitle    string   `json:"productTitle"`
	ProductImage    string   `json:"productImage"`
	UnitPrice       *float64 `json:"unitPrice"`
	OrderedQuantity *int     `json:"orderedQuantity"`
	TotalItemPrice  *float64 `json:"totalItemPrice"`
	CustomerName    string   `json:"customerName"`
	PhysicalAddress string   `json:"physicalAddress"`
	MapEmbedLink    string   `json:"mapEmbedLink"`
	Phone           string   `json:"phone"`
	PaymentMethod   string   `json:"paymentMethod"`
	TransactionID   *string  `json:"transactionId"`
	SenderNumber    *string  `json:"senderNumber"`
	Status          string   `json:"status"`
}

type CheckoutDTO struct {
	CustomerName    string  `json:"customerName"`
	PhysicalAddress string  `json:"physicalAddress"`
	MapEmbedLink    string  `json:"mapEmbedLink"`
	Phone           string  `json:"phone"`
	PaymentMethod   string  `json:"paymentMethod"`
	TransactionID   *string `json:"transactionId"`
	SenderNumber    *string `json:"senderNumber"`
	CouponCode      string  `json:"couponCode"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type AddReviewDTO struct {
	ProductID string `json:"productId"`
	Rating    *int   `json:"rating"`
	Comment   string `json:"comment"`
}

type AddReplyDTO struct {
	ReplyText string `json:"replyText"`
}

type AddWishlistItemDTO struct {
	ProductID string `json:"productId"`
}

type WishlistStatusDTO struct {
	InWishlist bool `json:"inWishlist"`
}

type SyncUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type UpdateUserDTO struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	PhotoURL    *string `json:"photoURL"`
	PhoneNumber *string `json:"phoneNumber"`
}

type UpdateUserStatusDTO struct {
	Status string `json:"status"`
}

type UpdateUserRoleDTO struct {
	Role string `json:"role"`
}

type SeedResultDTO struct {
	Seeded int `json:"seeded"`
}

type MessageDTO struct {
	Message string `json:"message"`
}
