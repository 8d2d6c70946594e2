package routes

import (
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/metrics"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/metrics", gin.WrapH(metrics.Handler()))
}
