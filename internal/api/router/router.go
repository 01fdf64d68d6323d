package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth/idtoken"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, verifier idtoken.IAuthVerifier, userService service.IUserService, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	auth := m.AuthMiddleware(verifier, userService, logger)

	// liveness
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Storefront API is running"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.List)
			r.Get("/{id}", server.ProductHandler.Get)
			r.With(auth, m.AdminMiddleware).Post("/", server.ProductHandler.Create)
			r.With(auth, m.AdminMiddleware).Put("/{id}", server.ProductHandler.Update)
			r.With(auth, m.AdminMiddleware).Delete("/{id}", server.ProductHandler.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", server.CartHandler.Get)
			r.Post("/", server.CartHandler.AddItem)
			// chi對固定segment優先於{productId}, clear不會被當成product id
			r.Delete("/clear", server.CartHandler.Clear)
			r.Put("/{productId}", server.CartHandler.UpdateItem)
			r.Delete("/{productId}", server.CartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", server.OrderHandler.Place)
			r.Post("/checkout", server.OrderHandler.Checkout)
			r.Get("/user/{uid}", server.OrderHandler.ListByUser)
			r.With(m.AdminMiddleware).Get("/", server.OrderHandler.ListAll)
			r.With(m.AdminMiddleware).Put("/{id}/status", server.OrderHandler.UpdateStatus)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/product/{productId}", server.ReviewHandler.ListByProduct)
			r.With(auth).Post("/", server.ReviewHandler.Add)
			r.With(auth).Post("/{reviewId}/reply", server.ReviewHandler.AddReply)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", server.WishlistHandler.Add)
			r.Get("/user/{uid}", server.WishlistHandler.ListByUser)
			r.Get("/status/{productId}", server.WishlistHandler.Status)
			r.Delete("/{productId}", server.WishlistHandler.Remove)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", server.UserHandler.Sync)
			r.With(m.AdminMiddleware).Get("/", server.UserHandler.List)
			r.Get("/{uid}", server.UserHandler.Get)
			r.Put("/{uid}", server.UserHandler.Update)
			r.With(m.AdminMiddleware).Put("/{uid}/status", server.UserHandler.UpdateStatus)
			r.With(m.AdminMiddleware).Put("/{uid}/role", server.UserHandler.UpdateRole)
		})
	})

	return r
}
