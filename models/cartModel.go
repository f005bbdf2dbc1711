package models

import "time"

// Cart lines are hard-deleted, so neither model carries gorm.DeletedAt.
// A soft-deleted line would keep occupying the (cart, product) unique
// index and block the product from being added again.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"uniqueIndex"`
	Lines     []CartLine `json:"lines" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartLine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cartId" gorm:"uniqueIndex:idx_cart_product"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_cart_product"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
