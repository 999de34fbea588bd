package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/commerce-admin/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	// auth endpoints are rate limited against brute forcing
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	// reporting
	r.Get("/api/dashboard/stats", handlers.GetDashboardStatsHandler)
	r.Get("/api/reports", handlers.GetReportsHandler)
	r.Get("/api/statistics", handlers.GetStatisticsHandler)

	// public reads
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.FilterProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/banners", handlers.GetBannersHandler)
	r.Get("/banners/{id}", handlers.GetBannerByIDHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)

		r.Post("/orders", handlers.CreateOrderHandler)
		r.Get("/orders", handlers.GetOrdersHandler)
		r.Get("/orders/{id}", handlers.GetOrderByIDHandler)
		r.Put("/orders/{id}/status", handlers.UpdateOrderStatusHandler)

		r.Post("/banners", handlers.CreateBannerHandler)
		r.Put("/banners/{id}", handlers.UpdateBannerHandler)
		r.Delete("/banners/{id}", handlers.DeleteBannerHandler)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/admin/users", handlers.RegisterAsAdminHandler)
			r.Get("/customers", handlers.GetCustomersHandler)
			r.Delete("/orders/{id}", handlers.DeleteOrderHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
