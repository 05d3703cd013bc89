package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voguemanic/voguemanic-backend/handlers"
	"github.com/voguemanic/voguemanic-backend/realtime"

	customMiddleware "github.com/voguemanic/voguemanic-backend/middleware"
)

func SetupRoutes(e *echo.Echo, sockets *realtime.Registry) {
	// Public routes
	e.POST("/users/signup", handlers.SignUp)
	e.POST("/users/login", handlers.Login)

	e.GET("/health-check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Protected routes
	api := e.Group("")
	api.Use(customMiddleware.AuthMiddleware())

	// Catalog
	api.GET("/products", handlers.GetProducts)

	// Cart
	api.GET("/cart", handlers.GetCart)
	api.POST("/cart", handlers.AddToCart)
	api.PUT("/cart/quantity", handlers.UpdateCartQuantity)
	api.DELETE("/cart/:productId", handlers.RemoveFromCart)
	api.POST("/cart/clear", handlers.ClearCart)

	// Wishlist
	api.GET("/wishlist", handlers.GetWishlist)
	api.POST("/wishlist", handlers.AddToWishlist)
	api.PUT("/wishlist/quantity", handlers.UpdateWishlistQuantity)
	api.DELETE("/wishlist/:productId", handlers.RemoveFromWishlist)
	api.POST("/wishlist/clear", handlers.ClearWishlist)

	// Orders
	api.POST("/order/place", handlers.PlaceOrder)
	api.POST("/order/getAll", handlers.GetOrders)
	api.GET("/order/:orderId", handlers.GetOrderByID)
	api.PUT("/order/:orderId/cancel", handlers.CancelOrder)

	// Resale marketplace
	api.GET("/resale", handlers.GetResaleListings)
	api.POST("/resale/mine", handlers.GetMyResaleProducts)
	api.GET("/resale/:productId", handlers.GetResaleProduct)
	api.PUT("/resale/:productId", handlers.RelistProduct)

	// Dashboard
	api.GET("/dashboard", handlers.GetDashboard)
	api.PUT("/dashboard", handlers.UpdateDashboard)

	// Realtime order events
	api.GET("/ws", realtime.Handler(sockets))

	// Admin back-office
	admin := api.Group("/admin")
	admin.Use(customMiddleware.AdminMiddleware())

	admin.POST("/products", handlers.CreateProduct)
	admin.PUT("/products/:id", handlers.UpdateProduct)
	admin.DELETE("/products/:id", handlers.DeleteProduct)

	admin.GET("/reports/total-orders", handlers.GetTotalOrders)
	admin.GET("/reports/total-items-sold", handlers.GetTotalItemsSold)
	admin.GET("/reports/total-sales", handlers.GetTotalSales)
	admin.GET("/reports/sales-per-order", handlers.GetSalesPerOrder)

	admin.GET("/employees", handlers.GetEmployees)
	admin.POST("/employees", handlers.AddEmployee)
	admin.DELETE("/employees/:id", handlers.DeleteEmployee)

	admin.PUT("/orders/:orderId/status", handlers.UpdateOrderStatus)
}
