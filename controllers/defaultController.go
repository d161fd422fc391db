package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		message := `Welcome to the Bookmart API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

PRODUCT
- GET "/api/products" - List products (search, category filter, pagination)
- GET "/api/products/:id" - Get product by ID
- POST "/api/products" - Create product (admin)
- PUT "/api/products/:id" - Update product (admin)
- DELETE "/api/products/:id" - Delete product (admin)
- POST "/api/products/:id/images" - Upload product gallery images (admin)

CATEGORY
- GET "/api/categories" - List categories
- GET "/api/categories/:id" - Get category by ID
- GET "/api/categories/:id/parent-options" - Valid parent choices (admin)
- POST "/api/categories" - Create category (admin)
- PUT "/api/categories/:id" - Update category (admin)
- DELETE "/api/categories/:id" - Delete category (admin)

ORDER
- POST "/api/orders" - Place an order
- GET "/api/orders" - List all orders (admin)
- GET "/api/orders/mine" - List own orders
- GET "/api/orders/:id" - Get order by ID (owner or admin)
- PATCH "/api/orders/:id" - Update order status (admin)
- DELETE "/api/orders/:id" - Delete order (admin)

CART
- GET "/api/cart" - Get cart
- POST "/api/cart" - Add item to cart
- PUT "/api/cart/items/:productId" - Update item quantity
- DELETE "/api/cart/items/:productId" - Remove item
- DELETE "/api/cart" - Clear cart

USER
- GET "/api/user/profile" - Get own profile
- PUT "/api/user/profile" - Update own profile
- PUT "/api/user/password" - Change password
- GET/POST "/api/user/addresses" - List/create addresses
- PUT/DELETE "/api/user/addresses/:id" - Update/delete address
- GET/POST "/api/users" and "/api/users/:id" routes - Admin user management`

		ctx.JSON(http.StatusOK, gin.H{
			"message": message,
		})
	}
}
