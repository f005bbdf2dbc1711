package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/nirg122/eCommerce-Website-with-stripe/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SyncResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// SyncCatalog pulls the active products and prices from Stripe and
// inserts any product not already present locally, matched on the Stripe
// product id. Existing products are never updated: the price captured at
// first sync stays frozen until the row is fixed by hand. The sync is
// best-effort, a failure on one product does not stop the rest.
func SyncCatalog(db *gorm.DB, client *StripeClient) (SyncResult, error) {
	var result SyncResult

	stripeProducts, err := client.ListActiveProducts()
	if err != nil {
		return result, err
	}
	if len(stripeProducts) == 0 {
		return result, ErrNoActiveProducts
	}

	stripePrices, err := client.ListActivePrices()
	if err != nil {
		return result, err
	}

	priceByProduct := make(map[string]StripePrice, len(stripePrices))
	for _, price := range stripePrices {
		if _, ok := priceByProduct[price.Product]; !ok {
			priceByProduct[price.Product] = price
		}
	}

	for _, stripeProduct := range stripeProducts {
		price, ok := priceByProduct[stripeProduct.ID]
		if !ok {
			log.Printf("Skipping %s: no active price", stripeProduct.ID)
			result.Skipped++
			continue
		}

		var existing models.Product
		err := db.Where("stripe_product_id = ?", stripeProduct.ID).First(&existing).Error
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Skipping %s: product lookup failed: %v", stripeProduct.ID, err)
			result.Skipped++
			continue
		}

		image := ""
		if len(stripeProduct.Images) > 0 {
			image = stripeProduct.Images[0]
		}
		images, err := json.Marshal(stripeProduct.Images)
		if err != nil {
			images = []byte("[]")
		}

		product := models.Product{
			Name:            stripeProduct.Name,
			Description:     stripeProduct.Description,
			Price:           PriceFromMinorUnits(price.UnitAmount),
			Image:           image,
			Images:          datatypes.JSON(images),
			StripeProductID: stripeProduct.ID,
			StripePriceID:   price.ID,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Skipping %s: insert failed: %v", stripeProduct.ID, err)
			result.Skipped++
			continue
		}
		result.Added++
	}

	return result, nil
}

// PriceFromMinorUnits converts an integer minor-unit amount into a
// major-unit price: 12345 becomes 123.45, 50 becomes 0.50 and 5 becomes
// 0.05.
func PriceFromMinorUnits(amount int64) float64 {
	price, _ := strconv.ParseFloat(fmt.Sprintf("%d.%02d", amount/100, amount%100), 64)
	return price
}
