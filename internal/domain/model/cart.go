package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart is anonymous and keyed by a random UUID.
// It lives until checkout or until cartsweep removes it.
type Cart struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime;index" json:"created_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
}
