package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Nova Store API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create customer account
- POST "/api/auth/login" - Sign in and receive a token
- GET "/api/auth/users" - List users (admin)

CATALOG
- GET "/api/products" - List products (category, brand, minPrice, maxPrice, featured, discountMin, sort, page, limit)
- GET "/api/products/category?slug=" - Products of a legacy category slug
- GET "/api/products/:id" - Get product by ID
- POST, PUT, PATCH, DELETE "/api/products[/:id]" - Manage products (admin)
- GET "/api/categories" - Category menu
- GET "/api/categories/all" - Flat category list
- GET "/api/categories/:id" - Category with subcategories
- POST, PUT, PATCH, DELETE "/api/categories[/:id]" - Manage categories (admin)

ORDER
- POST "/api/orders" - Place an order (guest or signed in)
- GET "/api/orders" - List all orders (admin)
- GET "/api/orders/mine" - Orders of the signed-in user
- GET "/api/orders/:id" - Get order by ID
- PATCH "/api/orders/:id/status" - Move an order along its lifecycle (admin)
- PATCH, DELETE "/api/orders/:id" - Edit or delete an order (admin)

STOREFRONT
- GET "/api/banners", "/api/branding", "/api/admin/home-settings"
- GET, POST, DELETE "/api/wishlist[/:productId]"
- POST "/api/contact"
- POST|DELETE "/api/upload", POST "/api/ftp-upload", GET|DELETE "/api/ftp-images" (admin)
- GET "/api/ftp-config", POST "/api/ftp-config/test" - FTP settings and connection test (admin)
- GET "/api/admin/stats" (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
