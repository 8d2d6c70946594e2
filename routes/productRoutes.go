package routes

import (
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, c *controllers.Controller) {
	admin := []gin.HandlerFunc{middlewares.RequireAuth(c.Tokens), middlewares.RequireAdmin()}

	products := server.Group("/api/products")
	{
		products.GET("", middlewares.OptionalAuth(c.Tokens), c.GetProducts)
		products.GET("/category", c.GetProductsByCategorySlug)
		products.GET("/:id", c.GetProduct)
		products.POST("", append(admin, c.CreateProduct)...)
		products.PUT("/:id", append(admin, c.UpdateProduct)...)
		products.PATCH("/:id", append(admin, c.UpdateProduct)...)
		products.DELETE("/:id", append(admin, c.DeleteProduct)...)
	}
}
