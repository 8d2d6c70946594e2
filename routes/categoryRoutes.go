package routes

import (
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CategoryRoutes(server *gin.Engine, c *controllers.Controller) {
	categories := server.Group("/api/categories")
	{
		categories.GET("", c.GetCategories)
		categories.GET("/all", c.GetAllCategories)
		categories.GET("/:id", c.GetCategory)
	}

	admin := categories.Group("", middlewares.RequireAuth(c.Tokens), middlewares.RequireAdmin())
	{
		admin.POST("", c.CreateCategory)
		admin.PUT("/:id", c.UpdateCategory)
		admin.PATCH("/:id", c.UpdateCategory)
		admin.DELETE("/:id", c.DeleteCategory)
	}
}
