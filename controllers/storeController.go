package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/initializers"
	"github.com/nirg122/eCommerce-Website-with-stripe/models"
)

// GetStorefront lists the synced catalog for the public landing page.
func GetStorefront(ctx *gin.Context) {
	var products []models.Product
	if result := initializers.DB.Order("name").Find(&products); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}
