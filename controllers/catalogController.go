package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/initializers"
	"github.com/nirg122/eCommerce-Website-with-stripe/services"
)

// FetchNewProductsFromStripe runs the one-way catalog sync. "Stripe has
// no active products" is reported distinctly from a sync that completed
// with everything skipped as already known.
func FetchNewProductsFromStripe(ctx *gin.Context) {
	result, err := services.SyncCatalog(initializers.DB, services.NewStripeClient())
	if err != nil {
		if errors.Is(err, services.ErrNoActiveProducts) {
			sendJSONResponse(ctx, http.StatusOK, gin.H{
				"message": "No products in Stripe site. Add some products first.",
				"added":   0,
				"skipped": 0,
			})
			return
		}

		var providerErr *services.ProviderError
		if errors.As(err, &providerErr) {
			log.Println("Stripe catalog error:", providerErr.Message)
			sendErrorResponse(ctx, http.StatusBadGateway, "Unable to fetch catalog from Stripe")
			return
		}

		log.Println("Catalog sync error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Successfully fetched products from Stripe",
		"added":   result.Added,
		"skipped": result.Skipped,
	})
}
