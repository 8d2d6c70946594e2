package routes

import (
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/gin-gonic/gin"
)

// StorefrontRoutes registers banners, branding, home settings, wishlist,
// uploads, contact and the admin dashboard.
func StorefrontRoutes(server *gin.Engine, c *controllers.Controller) {
	auth := middlewares.RequireAuth(c.Tokens)
	admin := middlewares.RequireAdmin()

	api := server.Group("/api")
	{
		api.GET("/banners", c.GetBanners)
		api.POST("/banners", auth, admin, c.CreateBanner)
		api.PATCH("/banners/:id", auth, admin, c.UpdateBanner)
		api.DELETE("/banners/:id", auth, admin, c.DeleteBanner)

		api.GET("/branding", c.GetBranding)
		api.PUT("/branding", auth, admin, c.UpdateBranding)

		api.GET("/admin/home-settings", c.GetHomeSettings)
		api.POST("/admin/home-settings", auth, admin, c.UpdateHomeSettings)
		api.GET("/admin/stats", auth, admin, c.GetStats)

		api.GET("/wishlist", auth, c.GetWishlist)
		api.POST("/wishlist", auth, c.AddToWishlist)
		api.DELETE("/wishlist/:productId", auth, c.RemoveFromWishlist)

		api.POST("/upload", auth, admin, c.UploadImage)
		api.DELETE("/upload", auth, admin, c.DeleteUpload)
		api.POST("/ftp-upload", auth, admin, c.UploadToFTP)
		api.GET("/ftp-images", auth, admin, c.GetFTPImages)
		api.DELETE("/ftp-images", auth, admin, c.DeleteFTPImage)
		api.GET("/ftp-config", auth, admin, c.GetFTPConfig)
		api.POST("/ftp-config/test", auth, admin, c.TestFTPConnection)

		api.POST("/contact", c.SendContactMessage)
	}
}
