package api

import "github.com/RoyceAzure/lab/storefront/internal/api/handler"

type Server struct {
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
	WishlistHandler *handler.WishlistHandler
	UserHandler     *handler.UserHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	wishlistHandler *handler.WishlistHandler,
	userHandler *handler.UserHandler,
) *Server {
	return &Server{
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		ReviewHandler:   reviewHandler,
		WishlistHandler: wishlistHandler,
		UserHandler:     userHandler,
	}
}
