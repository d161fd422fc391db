package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/middlewares"
	"github.com/okellodev/bookmart-api/models"
	"gorm.io/gorm"
)

// loadOrCreateCart fetches the user's cart with its items, creating an
// empty cart row on first use.
func loadOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).Preload("Items").First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

// saveCartItems replaces the cart's stored lines with its in-memory
// state after a reducer mutation.
func saveCartItems(db *gorm.DB, cart models.Cart) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}
		items := make([]models.CartItem, len(cart.Items))
		for i, item := range cart.Items {
			items[i] = models.CartItem{
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				ImageURL:  item.ImageURL,
			}
		}
		return tx.Create(&items).Error
	})
}

func cartResponse(cart models.Cart) gin.H {
	return gin.H{
		"cart":       cart,
		"totalItems": cart.TotalItems(),
		"totalPrice": cart.TotalPrice(),
	}
}

func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			log.Println("Cart fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, cartResponse(cart))
	}
}

// AddCartItem puts a product in the cart, merging quantities when the
// product is already a line. Name, price and image are snapshotted from
// the product row.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		var input struct {
			ProductID uint `json:"productId" binding:"required"`
			Quantity  int  `json:"quantity" binding:"required,gt=0"`
		}
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			} else {
				log.Println("Product fetch error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
			}
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			log.Println("Cart fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		cart.AddItem(models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  input.Quantity,
			ImageURL:  product.ImageURL,
		})

		if err := saveCartItems(db, cart); err != nil {
			log.Println("Cart save error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, cartResponse(cart))
	}
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		productId, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product id")
			return
		}

		var input struct {
			Quantity int `json:"quantity"`
		}
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			log.Println("Cart fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		if !cart.UpdateQuantity(uint(productId), input.Quantity) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
			return
		}

		if err := saveCartItems(db, cart); err != nil {
			log.Println("Cart save error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, cartResponse(cart))
	}
}

func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		productId, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product id")
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			log.Println("Cart fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		if !cart.RemoveItem(uint(productId)) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
			return
		}

		if err := saveCartItems(db, cart); err != nil {
			log.Println("Cart save error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, cartResponse(cart))
	}
}

func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			log.Println("Cart fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		cart.Clear()

		if err := saveCartItems(db, cart); err != nil {
			log.Println("Cart save error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, cartResponse(cart))
	}
}
