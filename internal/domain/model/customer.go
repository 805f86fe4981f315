package model

import "time"

type Membership string

const (
	MembershipBasic  Membership = "basic"
	MembershipSilver Membership = "silver"
	MembershipGold   Membership = "gold"
)

func (m Membership) Valid() bool {
	switch m {
	case MembershipBasic, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Customer is linked one-to-one to a User and created lazily.
type Customer struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	Phone      string     `gorm:"type:varchar(255)" json:"phone"`
	BirthDate  *time.Time `gorm:"type:date" json:"birth_date"`
	Membership Membership `gorm:"type:varchar(10);not null;default:'basic'" json:"membership"`
}
