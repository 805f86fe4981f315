package model

import "github.com/google/uuid"

// MaxCartItemQuantity bounds the quantity of one cart line.
const MaxCartItemQuantity int64 = 32767

// (cart_id, product_id) is unique: adding the same product again raises quantity.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_product;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}
