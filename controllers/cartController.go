package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/initializers"
	"github.com/nirg122/eCommerce-Website-with-stripe/services"
)

// AddToCart adds a product to the authenticated user's cart, or replaces
// the quantity of the existing line for that product.
func AddToCart(ctx *gin.Context) {
	userID := ctx.GetUint("userID")

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil || productID <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product id")
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	change, err := services.AddOrUpdateLine(initializers.DB, userID, uint(productID), input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be a positive whole number")
		case errors.Is(err, services.ErrProductNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		case errors.Is(err, services.ErrCartNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		default:
			log.Println("Add to cart error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	switch change {
	case services.LineAdded:
		sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Item added to cart"})
	case services.LineUpdated:
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity of item has been updated"})
	default:
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product is already in cart with the same quantity"})
	}
}

// DeleteFromCart removes a single line and tells the caller whether the
// cart is empty afterwards.
func DeleteFromCart(ctx *gin.Context) {
	userID := ctx.GetUint("userID")

	lineID, err := strconv.Atoi(ctx.Param("lineId"))
	if err != nil || lineID <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart line id")
		return
	}

	cartEmpty, err := services.RemoveLine(initializers.DB, userID, uint(lineID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLineNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Cart line not found")
		case errors.Is(err, services.ErrCartNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		default:
			log.Println("Delete from cart error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	message := "Item removed from cart"
	if cartEmpty {
		message = "No products in cart"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message, "cartEmpty": cartEmpty})
}

// UpdateCartQuantities applies a bulk quantity update from form fields of
// the shape item_<lineId>=<quantity>. Each entry gets its own status;
// fields that do not match the shape are ignored.
func UpdateCartQuantities(ctx *gin.Context) {
	userID := ctx.GetUint("userID")

	if err := ctx.Request.ParseForm(); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := make(map[uint]int)
	for field, values := range ctx.Request.PostForm {
		lineIDText, ok := strings.CutPrefix(field, "item_")
		if !ok || len(values) == 0 {
			continue
		}
		lineID, err := strconv.Atoi(lineIDText)
		if err != nil || lineID <= 0 {
			continue
		}
		// Non-numeric quantities become zero and are reported as
		// invalid_quantity per entry.
		quantity, err := strconv.Atoi(values[0])
		if err != nil {
			quantity = 0
		}
		updates[uint(lineID)] = quantity
	}

	results, changed, err := services.BulkUpdateQuantities(initializers.DB, userID, updates)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
			return
		}
		log.Println("Bulk cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	message := "No changes have been made"
	if changed > 0 {
		message = "Cart has been updated"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": message,
		"changed": changed,
		"results": results,
	})
}

// GetCart renders the cart view with its computed total.
func GetCart(ctx *gin.Context) {
	userID := ctx.GetUint("userID")

	view, err := services.GetCartView(initializers.DB, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "No products in cart", "entries": []services.CartEntry{}, "total": 0})
		case errors.Is(err, services.ErrCartNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		default:
			log.Println("Cart view error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"entries": view.Entries, "total": view.Total})
}
