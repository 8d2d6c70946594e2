package routes

import (
	"log/slog"
	"time"

	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/metrics"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewServer builds the engine with the global middleware and every route.
func NewServer(c *controllers.Controller, allowOrigins []string, logger *slog.Logger) *gin.Engine {
	server := gin.New()
	server.ContextWithFallback = true
	server.Use(gin.Recovery(), middlewares.RequestLogger(logger), metrics.Middleware())
	if c.UploadMaxBytes > 0 {
		server.MaxMultipartMemory = c.UploadMaxBytes
	}

	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	DefaultRoutes(server)
	AuthRoutes(server, c)
	ProductRoutes(server, c)
	CategoryRoutes(server, c)
	OrderRoutes(server, c)
	StorefrontRoutes(server, c)
	return server
}
