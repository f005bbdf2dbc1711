package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity     = errors.New("quantity must be a positive whole number")
	ErrCartNotFound        = errors.New("cart not found")
	ErrLineNotFound        = errors.New("cart line not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrEmptyOrMissingCart  = errors.New("cart is empty or missing")
	ErrNoActiveProducts    = errors.New("no active products in stripe")
	ErrPaymentNotCompleted = errors.New("payment has not been completed for this checkout session")
)

// ProviderError carries a failure message reported by Stripe itself.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("stripe: %s", e.Message)
}
