package routes

import (
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, c *controllers.Controller) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/register", c.Signup)
		auth.POST("/login", c.Login)
		auth.GET("/users", middlewares.RequireAuth(c.Tokens), middlewares.RequireAdmin(), c.GetUsers)
	}
}
