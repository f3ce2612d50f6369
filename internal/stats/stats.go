// Package stats computes aggregate figures over a full snapshot of a user's
// transactions. Every function here is pure; callers fetch the snapshot.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"campuscash/internal/models"
)

// Summary is the aggregate view of a transaction snapshot.
type Summary struct {
	TotalIncome       decimal.Decimal            `json:"totalIncome"`
	TotalExpenses     decimal.Decimal            `json:"totalExpenses"`
	Balance           decimal.Decimal            `json:"balance"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	TransactionCount  int                        `json:"transactionCount"`

	// IncomeBreakdown mirrors CategoryBreakdown for income records. It feeds
	// the export and is not part of the stats payload.
	IncomeBreakdown map[string]decimal.Decimal `json:"-"`
}

// Compute aggregates snapshot. Amounts are assumed non-negative; the store
// boundary rejects anything else. Categories whose records sum to zero are
// left out of both breakdowns.
func Compute(snapshot []models.Transaction) Summary {
	s := Summary{
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		CategoryBreakdown: make(map[string]decimal.Decimal),
		IncomeBreakdown:   make(map[string]decimal.Decimal),
		TransactionCount:  len(snapshot),
	}

	for _, t := range snapshot {
		switch t.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			addTo(s.IncomeBreakdown, t.Category, t.Amount)
		case models.TransactionTypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			addTo(s.CategoryBreakdown, t.Category, t.Amount)
		}
	}

	prune(s.CategoryBreakdown)
	prune(s.IncomeBreakdown)

	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

func addTo(m map[string]decimal.Decimal, category string, amount decimal.Decimal) {
	if cur, ok := m[category]; ok {
		m[category] = cur.Add(amount)
		return
	}
	m[category] = amount
}

// prune drops zero totals, which only zero-amount records can produce.
func prune(m map[string]decimal.Decimal) {
	for k, v := range m {
		if v.IsZero() {
			delete(m, k)
		}
	}
}

// RankRecent returns a copy of snapshot ordered by Date, most recent first.
// Records with equal dates keep their input order, so passing the snapshot
// in creation order yields creation order among ties. A positive limit
// truncates the result.
func RankRecent(snapshot []models.Transaction, limit int) []models.Transaction {
	ranked := make([]models.Transaction, len(snapshot))
	copy(ranked, snapshot)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Date.After(ranked[j].Date)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
