package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirg122/eCommerce-Website-with-stripe/initializers"
	"github.com/nirg122/eCommerce-Website-with-stripe/services"
)

// CreateCheckoutSession hands the cart off to Stripe's hosted payment
// page. 303 forces the browser to follow with a plain GET.
func CreateCheckoutSession(ctx *gin.Context) {
	userID := ctx.GetUint("userID")

	url, err := services.BeginCheckout(initializers.DB, services.NewStripeClient(), userID)
	if err != nil {
		var providerErr *services.ProviderError
		switch {
		case errors.Is(err, services.ErrEmptyOrMissingCart):
			sendErrorResponse(ctx, http.StatusBadRequest, "Your cart is empty")
		case errors.As(err, &providerErr):
			sendErrorResponse(ctx, http.StatusBadGateway, providerErr.Message)
		default:
			log.Println("Checkout error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	ctx.Redirect(http.StatusSeeOther, url)
}

// CheckoutSuccess is the redirect target Stripe sends the customer to.
// The cart is cleared only after the session is verified as paid; a
// manual visit with an unpaid or bogus session id clears nothing.
func CheckoutSuccess(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing session_id")
		return
	}

	err := services.CompleteCheckout(initializers.DB, services.NewStripeClient(), sessionID)
	if err != nil {
		var providerErr *services.ProviderError
		switch {
		case errors.Is(err, services.ErrPaymentNotCompleted):
			sendErrorResponse(ctx, http.StatusBadRequest, "Payment has not been completed")
		case errors.As(err, &providerErr):
			log.Println("Stripe session lookup error:", providerErr.Message)
			sendErrorResponse(ctx, http.StatusBadGateway, "Unable to verify payment")
		default:
			log.Println("Checkout completion error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment successful. Your cart has been cleared."})
}

func CheckoutCancel(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Transaction canceled"})
}
