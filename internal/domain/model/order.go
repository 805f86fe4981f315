package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusComplete PaymentStatus = "complete"
	PaymentStatusFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}

type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    int64         `gorm:"not null;index" json:"customer"`
	PlacedAt      time.Time     `gorm:"not null;index" json:"placed_at"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"payment_status"`
	Customer      *Customer     `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID" json:"-"`
}
