package routes

import (
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, c *controllers.Controller) {
	optional := middlewares.OptionalAuth(c.Tokens)
	auth := middlewares.RequireAuth(c.Tokens)
	admin := middlewares.RequireAdmin()

	orders := server.Group("/api/orders")
	{
		orders.POST("", optional, c.CreateOrder)
		orders.GET("", auth, admin, c.GetOrders)
		orders.GET("/mine", auth, c.GetMyOrders)
		orders.GET("/:id", optional, c.GetOrder)
		orders.PATCH("/:id", auth, admin, c.PatchOrder)
		orders.PATCH("/:id/status", auth, admin, c.UpdateOrderStatus)
		orders.DELETE("/:id", auth, admin, c.DeleteOrder)
	}

	server.GET("/api/payments/pesapal/ipn", c.HandlePesapalIPN)
	server.POST("/api/payments/pesapal/ipn", c.HandlePesapalIPN)
}
