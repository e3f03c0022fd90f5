package router

import (
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	m "github.com/RoyceAzure/lab/shop/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *handler.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		// 目錄唯讀查詢，不需要認證
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.GetProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Post("/add", server.CartHandler.AddItem)
				r.Post("/add-multiple", server.CartHandler.AddItems)
				r.Put("/update", server.CartHandler.UpdateItem)
				r.Delete("/remove", server.CartHandler.RemoveItem)
				r.Delete("/remove-multiple", server.CartHandler.RemoveItems)
				r.Delete("/clear", server.CartHandler.Clear)
				r.Get("/items", server.CartHandler.GetItems)
			})

			r.Route("/order", func(r chi.Router) {
				r.Post("/", server.OrderHandler.CreateOrder)
				r.Get("/", server.OrderHandler.GetOrders)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Get("/number/{orderNumber}", server.OrderHandler.GetOrderByNumber)
				r.Patch("/status/{orderID}", server.OrderHandler.UpdateStatus)
			})
		})
	})

	return r
}
