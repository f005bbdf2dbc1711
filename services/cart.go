package services

import (
	"errors"
	"sort"

	"github.com/nirg122/eCommerce-Website-with-stripe/models"
	"gorm.io/gorm"
)

// CartChange reports what AddOrUpdateLine did, so handlers can tell the
// user "added", "quantity updated" or "already in cart" apart.
type CartChange int

const (
	LineUnchanged CartChange = iota
	LineAdded
	LineUpdated
)

type LineUpdateStatus string

const (
	StatusUpdated         LineUpdateStatus = "updated"
	StatusUnchanged       LineUpdateStatus = "unchanged"
	StatusNotFound        LineUpdateStatus = "not_found"
	StatusInvalidQuantity LineUpdateStatus = "invalid_quantity"
)

type LineUpdateResult struct {
	LineID uint             `json:"lineId"`
	Status LineUpdateStatus `json:"status"`
}

type CartEntry struct {
	Line    models.CartLine `json:"line"`
	Product models.Product  `json:"product"`
}

type CartView struct {
	Entries []CartEntry `json:"entries"`
	Total   float64     `json:"total"`
}

func cartForUser(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cart, ErrCartNotFound
	}
	return cart, err
}

// AddOrUpdateLine puts quantity of a product into the user's cart. A cart
// holds at most one line per product: an existing line has its quantity
// replaced instead of a second line being created. The whole
// read-check-write sequence runs in one transaction; the unique index on
// (cart_id, product_id) is the authoritative guard against concurrent
// duplicates.
func AddOrUpdateLine(db *gorm.DB, userID, productID uint, quantity int) (CartChange, error) {
	if quantity <= 0 {
		return LineUnchanged, ErrInvalidQuantity
	}

	change := LineUnchanged
	err := db.Transaction(func(tx *gorm.DB) error {
		cart, err := cartForUser(tx, userID)
		if err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var line models.CartLine
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			line = models.CartLine{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			change = LineAdded
			return nil
		}
		if err != nil {
			return err
		}

		if line.Quantity == quantity {
			change = LineUnchanged
			return nil
		}

		line.Quantity = quantity
		if err := tx.Save(&line).Error; err != nil {
			return err
		}
		change = LineUpdated
		return nil
	})

	return change, err
}

// RemoveLine deletes one line from the user's cart and reports whether
// the cart is now empty.
func RemoveLine(db *gorm.DB, userID, lineID uint) (bool, error) {
	cartEmpty := false
	err := db.Transaction(func(tx *gorm.DB) error {
		cart, err := cartForUser(tx, userID)
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND cart_id = ?", lineID, cart.ID).Delete(&models.CartLine{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLineNotFound
		}

		var remaining int64
		if err := tx.Model(&models.CartLine{}).Where("cart_id = ?", cart.ID).Count(&remaining).Error; err != nil {
			return err
		}
		cartEmpty = remaining == 0
		return nil
	})
	return cartEmpty, err
}

// BulkUpdateQuantities applies a set of per-line quantity changes
// best-effort: every entry gets its own status and one bad entry never
// aborts the rest. Entries are processed in ascending line-id order.
func BulkUpdateQuantities(db *gorm.DB, userID uint, updates map[uint]int) ([]LineUpdateResult, int, error) {
	cart, err := cartForUser(db, userID)
	if err != nil {
		return nil, 0, err
	}

	lineIDs := make([]uint, 0, len(updates))
	for lineID := range updates {
		lineIDs = append(lineIDs, lineID)
	}
	sort.Slice(lineIDs, func(i, j int) bool { return lineIDs[i] < lineIDs[j] })

	results := make([]LineUpdateResult, 0, len(updates))
	changed := 0
	for _, lineID := range lineIDs {
		quantity := updates[lineID]
		if quantity <= 0 {
			results = append(results, LineUpdateResult{LineID: lineID, Status: StatusInvalidQuantity})
			continue
		}

		var line models.CartLine
		err := db.Where("id = ? AND cart_id = ?", lineID, cart.ID).First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			results = append(results, LineUpdateResult{LineID: lineID, Status: StatusNotFound})
			continue
		}
		if err != nil {
			return results, changed, err
		}

		if line.Quantity == quantity {
			results = append(results, LineUpdateResult{LineID: lineID, Status: StatusUnchanged})
			continue
		}

		line.Quantity = quantity
		if err := db.Save(&line).Error; err != nil {
			return results, changed, err
		}
		changed++
		results = append(results, LineUpdateResult{LineID: lineID, Status: StatusUpdated})
	}

	return results, changed, nil
}

// GetCartView returns every line paired with its product, plus the cart
// total. An empty cart is reported as ErrEmptyCart, a normal state rather
// than a hard failure.
func GetCartView(db *gorm.DB, userID uint) (CartView, error) {
	var view CartView

	cart, err := cartForUser(db, userID)
	if err != nil {
		return view, err
	}

	var lines []models.CartLine
	if err := db.Where("cart_id = ?", cart.ID).Order("id").Find(&lines).Error; err != nil {
		return view, err
	}
	if len(lines) == 0 {
		return view, ErrEmptyCart
	}

	for _, line := range lines {
		var product models.Product
		if err := db.First(&product, line.ProductID).Error; err != nil {
			return CartView{}, err
		}
		view.Entries = append(view.Entries, CartEntry{Line: line, Product: product})
		view.Total += float64(line.Quantity) * product.Price
	}

	return view, nil
}

// ClearCart deletes every line in the user's cart. Clearing an already
// empty cart is a no-op.
func ClearCart(db *gorm.DB, userID uint) error {
	cart, err := cartForUser(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error
}
