package models

import "github.com/shopspring/decimal"

// User is an account holder. Transactions reference it through UserID.
type User struct {
	Base
	Name     string          `gorm:"not null" json:"name"`
	Email    string          `gorm:"uniqueIndex;not null" json:"email"`
	Password string          `gorm:"not null" json:"-"`
	Budget   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"budget"`
}
