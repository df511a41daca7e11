package routes

import (
	"cloud_kitchen/internal/adapter/http/handlers"
	"cloud_kitchen/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders  = "/orders"
	PathKitchen = "/kitchen"
	PathMenu    = "/menu"
)

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		// Public: checkout and phone tracking.
		orders.POST("", h.CreateOrder)
		orders.GET("/by-phone", h.GetOrdersByPhone)
		orders.GET("/version", h.OrdersVersion)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/cancel", h.CancelOrder)

		// Admin.
		orders.GET("", middleware.RequireAdmin(), h.ListOrders)
		orders.PATCH("/:id/status", middleware.RequireAdmin(), h.UpdateOrderStatus)
	}
}

func addKitchenRoutes(rg *gin.RouterGroup, h *handlers.KitchenHandler) {
	kitchen := rg.Group(PathKitchen)
	{
		kitchen.GET("/status", h.GetStatus)
		kitchen.PATCH("/status", middleware.RequireAdmin(), h.SetStatus)
	}
}

func addMenuRoutes(rg *gin.RouterGroup, h *handlers.MenuHandler) {
	menu := rg.Group(PathMenu)
	{
		menu.GET("", h.GetMenu)
		menu.GET("/version", h.MenuVersion)
		menu.PUT("", middleware.RequireAdmin(), h.UpdateMenu)
	}
}
