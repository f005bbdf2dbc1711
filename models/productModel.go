package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product rows are created only by the Stripe catalog sync; the
// storefront never mutates price or the Stripe identifiers.
type Product struct {
	gorm.Model
	Name            string         `json:"name" gorm:"uniqueIndex;size:191;not null"`
	Description     string         `json:"description"`
	Price           float64        `json:"price"`
	Image           string         `json:"image"`
	Images          datatypes.JSON `json:"images"`
	StripeProductID string         `json:"stripeProductId" gorm:"uniqueIndex;size:191;not null"`
	StripePriceID   string         `json:"stripePriceId" gorm:"size:191;not null"`
}
