package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a transaction. It is fixed at creation.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// MaxAmount is the largest amount the NUMERIC(14,2) columns hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// Amounts with more fraction digits than this are rejected rather than rounded.
const maxAmountScale = 20

// AmountInRange reports whether |d| <= MaxAmount. The exponent and the
// coefficient size are checked first, so a literal such as 1e30000000 is
// rejected without ever being expanded.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -maxAmountScale || exp > 12 {
		return false
	}
	if d.Coefficient().BitLen() > 128 {
		return false
	}
	return d.Abs().Cmp(MaxAmount) <= 0
}

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;index" json:"userId"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category string          `gorm:"not null" json:"category"`
	Type     TransactionType `gorm:"not null" json:"type"`
	Note     string          `json:"note"`
	Date     time.Time       `gorm:"not null;index" json:"date"`
}

// TransactionPatch carries the fields of a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Amount   *decimal.Decimal
	Category *string
	Type     *TransactionType
	Note     *string
}

// Apply copies the non-nil fields of p onto t. Identity, owner and date are never changed.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
}

// Empty reports whether p changes nothing.
func (p TransactionPatch) Empty() bool {
	return p.Amount == nil && p.Category == nil && p.Type == nil && p.Note == nil
}
