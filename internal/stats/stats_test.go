package stats

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"campuscash/internal/categories"
	"campuscash/internal/models"
)

func tx(kind models.TransactionType, amount string, category string) models.Transaction {
	return models.Transaction{
		Type:     kind,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     time.Now(),
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)

	if !s.TotalIncome.IsZero() || !s.TotalExpenses.IsZero() || !s.Balance.IsZero() {
		t.Errorf("expected zero totals, got %s/%s/%s", s.TotalIncome, s.TotalExpenses, s.Balance)
	}
	if s.TransactionCount != 0 {
		t.Errorf("TransactionCount = %d, want 0", s.TransactionCount)
	}
	if len(s.CategoryBreakdown) != 0 {
		t.Errorf("CategoryBreakdown = %v, want empty", s.CategoryBreakdown)
	}

	body, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"totalIncome":0,"totalExpenses":0,"balance":0,"categoryBreakdown":{},"transactionCount":0}`
	if string(body) != want {
		t.Errorf("json = %s\nwant  %s", body, want)
	}
}

func TestCompute_IncomeAndExpense(t *testing.T) {
	s := Compute([]models.Transaction{
		tx(models.TransactionTypeExpense, "500", "Food & Drinks"),
		tx(models.TransactionTypeIncome, "2000", "Allowance"),
	})

	if !s.TotalIncome.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("TotalIncome = %s, want 2000", s.TotalIncome)
	}
	if !s.TotalExpenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("TotalExpenses = %s, want 500", s.TotalExpenses)
	}
	if !s.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Balance = %s, want 1500", s.Balance)
	}
	if len(s.CategoryBreakdown) != 1 || !s.CategoryBreakdown["Food & Drinks"].Equal(decimal.NewFromInt(500)) {
		t.Errorf("CategoryBreakdown = %v", s.CategoryBreakdown)
	}
	if s.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", s.TransactionCount)
	}
	if !s.IncomeBreakdown["Allowance"].Equal(decimal.NewFromInt(2000)) {
		t.Errorf("IncomeBreakdown = %v", s.IncomeBreakdown)
	}
}

func TestCompute_ZeroAmountCategoryOmitted(t *testing.T) {
	s := Compute([]models.Transaction{
		tx(models.TransactionTypeExpense, "0", "Bills"),
		tx(models.TransactionTypeExpense, "12.5", "Transport"),
	})

	if _, ok := s.CategoryBreakdown["Bills"]; ok {
		t.Error("zero-total category must be absent")
	}
	if s.TransactionCount != 2 {
		t.Errorf("zero-amount records still count, got %d", s.TransactionCount)
	}
}

func TestCompute_DecimalSumsAreExact(t *testing.T) {
	s := Compute([]models.Transaction{
		tx(models.TransactionTypeExpense, "0.1", "Other"),
		tx(models.TransactionTypeExpense, "0.2", "Other"),
	})
	if !s.TotalExpenses.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("TotalExpenses = %s, want 0.3", s.TotalExpenses)
	}
}

func TestCompute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tables := categories.Default()

	for round := 0; round < 200; round++ {
		n := rng.Intn(40)
		snapshot := make([]models.Transaction, 0, n)
		incomeCount, expenseCount := 0, 0
		for i := 0; i < n; i++ {
			kind := models.TransactionTypeExpense
			if rng.Intn(2) == 0 {
				kind = models.TransactionTypeIncome
			}
			names := tables.Names(kind)
			amount := decimal.New(rng.Int63n(1_000_000), -2)
			if rng.Intn(10) == 0 {
				amount = decimal.Zero
			}
			snapshot = append(snapshot, models.Transaction{
				Type:     kind,
				Category: names[rng.Intn(len(names))],
				Amount:   amount,
			})
			if kind == models.TransactionTypeIncome {
				incomeCount++
			} else {
				expenseCount++
			}
		}

		s := Compute(snapshot)

		if !s.TotalIncome.Sub(s.TotalExpenses).Equal(s.Balance) {
			t.Fatalf("round %d: balance %s != %s - %s", round, s.Balance, s.TotalIncome, s.TotalExpenses)
		}

		sum := decimal.Zero
		for k, v := range s.CategoryBreakdown {
			if v.IsZero() {
				t.Fatalf("round %d: breakdown key %q has zero value", round, k)
			}
			sum = sum.Add(v)
		}
		if !sum.Equal(s.TotalExpenses) {
			t.Fatalf("round %d: breakdown sum %s != totalExpenses %s", round, sum, s.TotalExpenses)
		}

		if s.TransactionCount != incomeCount+expenseCount {
			t.Fatalf("round %d: count %d != %d+%d", round, s.TransactionCount, incomeCount, expenseCount)
		}
	}
}

func TestRankRecent_OrdersByDateDesc(t *testing.T) {
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	snapshot := []models.Transaction{
		{Base: models.Base{ID: "a"}, Date: base},
		{Base: models.Base{ID: "b"}, Date: base.Add(2 * time.Hour)},
		{Base: models.Base{ID: "c"}, Date: base.Add(time.Hour)},
	}

	ranked := RankRecent(snapshot, 0)

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].ID, id)
		}
	}
	if snapshot[0].ID != "a" {
		t.Error("input slice must not be reordered")
	}
}

func TestRankRecent_StableOnTies(t *testing.T) {
	same := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	snapshot := make([]models.Transaction, 0, 20)
	for i := 0; i < 20; i++ {
		snapshot = append(snapshot, models.Transaction{Base: models.Base{ID: string(rune('a' + i))}, Date: same})
	}
	snapshot = append(snapshot, models.Transaction{Base: models.Base{ID: "newest"}, Date: same.Add(time.Second)})

	ranked := RankRecent(snapshot, 0)

	if ranked[0].ID != "newest" {
		t.Fatalf("ranked[0] = %s, want newest", ranked[0].ID)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].ID != snapshot[i-1].ID {
			t.Errorf("tie order broken at %d: got %s, want %s", i, ranked[i].ID, snapshot[i-1].ID)
		}
	}
}

func TestRankRecent_Limit(t *testing.T) {
	base := time.Now()
	snapshot := make([]models.Transaction, 15)
	for i := range snapshot {
		snapshot[i].Date = base.Add(time.Duration(i) * time.Minute)
	}

	if got := len(RankRecent(snapshot, 10)); got != 10 {
		t.Errorf("len = %d, want 10", got)
	}
	if got := len(RankRecent(snapshot[:3], 10)); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
	if got := len(RankRecent(nil, 10)); got != 0 {
		t.Errorf("len = %d, want 0", got)
	}
}
