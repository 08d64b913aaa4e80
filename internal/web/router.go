package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

type Stores struct {
	Cart     *store.Cart
	Products *store.Products
	Orders   *store.Orders
	Auth     *store.Auth
}

// NewRouter mounts the whole storefront. Route groups follow the original
// pages: public catalog, the cart and checkout flow, orders, and the admin
// console behind the admin gate.
func NewRouter(s Stores, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	cartHandler := NewCartHandler(s.Cart, logger)
	checkoutHandler := NewCheckoutHandler(s.Cart, logger)
	productHandler := NewProductHandler(s.Products, logger)
	orderHandler := NewOrderHandler(s.Orders, s.Auth, logger)
	userHandler := NewUserHandler(s.Auth, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	r.Route("/api", func(r chi.Router) {
		// catalog, open to everyone
		r.Get("/products", productHandler.List)
		r.Get("/products/top", productHandler.Top)
		r.Get("/products/{productID}", productHandler.Get)

		// session
		r.Post("/session", userHandler.Login)
		r.Delete("/session", userHandler.Logout)
		r.Post("/users", userHandler.Register)

		// cart and checkout, usable anonymously until order placement
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(s.Auth, logger))

			r.Post("/products/{productID}/reviews", productHandler.CreateReview)
			r.Get("/users/profile", userHandler.Profile)
			r.Put("/users/profile", userHandler.UpdateProfile)

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkoutHandler.Review)
				r.Put("/shipping", checkoutHandler.SetShipping)
				r.Put("/payment", checkoutHandler.SetPayment)
				r.Post("/", checkoutHandler.PlaceOrder)
			})

			r.Get("/orders/mine", orderHandler.Mine)
			r.Get("/orders/{orderID}", orderHandler.Get)
			r.Post("/orders/{orderID}/pay", orderHandler.Pay)
		})

		// admin console
		r.Group(func(r chi.Router) {
			r.Use(RequireSession(s.Auth, logger))
			r.Use(RequireAdmin(s.Auth, logger))

			r.Post("/products", productHandler.Create)
			r.Put("/products/{productID}", productHandler.Update)
			r.Delete("/products/{productID}", productHandler.Delete)

			r.Get("/orders", orderHandler.ListAll)
			r.Put("/orders/{orderID}/deliver", orderHandler.Deliver)

			r.Get("/users", userHandler.List)
			r.Delete("/users/{userID}", userHandler.Delete)
		})
	})

	return r
}
