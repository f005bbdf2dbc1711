package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/nirg122/eCommerce-Website-with-stripe/models"
	"gorm.io/gorm"
)

// BeginCheckout converts the user's cart lines into Stripe line items and
// creates a hosted checkout session, returning its URL for a 303
// redirect. The cart is read first and the Stripe call happens outside
// any transaction; an empty or missing cart fails before Stripe is ever
// contacted. A failed session creation is not retried.
func BeginCheckout(db *gorm.DB, client *StripeClient, userID uint) (string, error) {
	cart, err := cartForUser(db, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return "", ErrEmptyOrMissingCart
		}
		return "", err
	}

	var lines []models.CartLine
	if err := db.Where("cart_id = ?", cart.ID).Order("id").Find(&lines).Error; err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyOrMissingCart
	}

	items := make([]CheckoutLine, 0, len(lines))
	for _, line := range lines {
		var product models.Product
		if err := db.First(&product, line.ProductID).Error; err != nil {
			return "", err
		}
		items = append(items, CheckoutLine{PriceID: product.StripePriceID, Quantity: line.Quantity})
	}

	domain := os.Getenv("DOMAIN")
	session, err := client.CreateCheckoutSession(
		items,
		strconv.FormatUint(uint64(userID), 10),
		domain+"/success?session_id={CHECKOUT_SESSION_ID}",
		domain+"/cancel",
	)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// CompleteCheckout clears the cart behind a checkout session, but only
// after Stripe confirms the session is paid. Revisiting the success URL
// re-clears an already empty cart, which is a no-op.
func CompleteCheckout(db *gorm.DB, client *StripeClient, sessionID string) error {
	session, err := client.GetCheckoutSession(sessionID)
	if err != nil {
		return err
	}
	if session.PaymentStatus != "paid" {
		return ErrPaymentNotCompleted
	}

	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid client reference %q on session %s: %w", session.ClientReferenceID, sessionID, err)
	}
	return ClearCart(db, uint(userID))
}
