package model

// Collection groups products. A collection that still has products cannot be deleted.
type Collection struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Products []Product `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT" json:"-"`
}

// CollectionWithCount is the read model used by list/detail queries.
type CollectionWithCount struct {
	ID            int64
	Title         string
	ProductsCount int64
}
