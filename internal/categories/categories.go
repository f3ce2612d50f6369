// Package categories holds the fixed category tables for income and expense
// transactions. The tables are plain values; callers receive them explicitly.
package categories

import "campuscash/internal/models"

// Category is a single entry of a category table.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Tables maps each transaction type to its ordered category list.
type Tables struct {
	Income  []Category `json:"income"`
	Expense []Category `json:"expense"`
}

// Default returns the built-in category tables.
func Default() Tables {
	return Tables{
		Expense: []Category{
			{Name: "Food & Drinks", Icon: "🍔", Color: "#FF6B6B"},
			{Name: "Transport", Icon: "🚗", Color: "#4ECDC4"},
			{Name: "Shopping", Icon: "🛍️", Color: "#FFD93D"},
			{Name: "Entertainment", Icon: "🎮", Color: "#A78BFA"},
			{Name: "Bills", Icon: "📄", Color: "#FF8787"},
			{Name: "Education", Icon: "📚", Color: "#6C63FF"},
			{Name: "Health", Icon: "⚕️", Color: "#51CF66"},
			{Name: "Other", Icon: "📌", Color: "#868E96"},
		},
		Income: []Category{
			{Name: "Allowance", Icon: "💰", Color: "#51CF66"},
			{Name: "Part-time", Icon: "💼", Color: "#4ECDC4"},
			{Name: "Freelance", Icon: "💻", Color: "#6C63FF"},
			{Name: "Gift", Icon: "🎁", Color: "#FF6B6B"},
			{Name: "Other", Icon: "➕", Color: "#868E96"},
		},
	}
}

// For returns the table for the given transaction type, or nil for unknown types.
func (t Tables) For(kind models.TransactionType) []Category {
	switch kind {
	case models.TransactionTypeIncome:
		return t.Income
	case models.TransactionTypeExpense:
		return t.Expense
	}
	return nil
}

// Lookup finds a category by exact name within the table of kind.
func (t Tables) Lookup(kind models.TransactionType, name string) (Category, bool) {
	for _, c := range t.For(kind) {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Contains reports whether name is a category of kind.
func (t Tables) Contains(kind models.TransactionType, name string) bool {
	_, ok := t.Lookup(kind, name)
	return ok
}

// Names returns the category names of kind in table order.
func (t Tables) Names(kind models.TransactionType) []string {
	list := t.For(kind)
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	return names
}
