package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is applied to unit_price to derive price_with_tax.
var TaxRate = decimal.RequireFromString("1.1")

type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug         string          `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description  string          `gorm:"type:text" json:"description"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Inventory    int64           `gorm:"not null;default:0" json:"inventory"`
	CollectionID int64           `gorm:"not null;index" json:"collection"`
	LastUpdate   time.Time       `gorm:"not null;autoUpdateTime" json:"last_update"`
}

// PriceWithTax is informational and never persisted.
func (p Product) PriceWithTax() decimal.Decimal {
	return p.UnitPrice.Mul(TaxRate).Round(2)
}
