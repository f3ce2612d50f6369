package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"campuscash/internal/categories"
	"campuscash/internal/models"
	"campuscash/internal/stats"
)

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func newTestFormatter() *Formatter {
	f := New(categories.Default(), "KSh", language.AmericanEnglish)
	f.Location = time.UTC
	f.Now = func() time.Time { return fixedNow }
	return f
}

func record(kind models.TransactionType, amount, category, note string, date time.Time) models.Transaction {
	return models.Transaction{
		Type:     kind,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Note:     note,
		Date:     date,
	}
}

func TestRender_FullDocument(t *testing.T) {
	snapshot := []models.Transaction{
		record(models.TransactionTypeIncome, "2000", "Allowance", "", fixedNow.Add(-26*time.Hour)),
		record(models.TransactionTypeExpense, "500", "Food & Drinks", "lunch", fixedNow.Add(-time.Hour)),
		record(models.TransactionTypeExpense, "1250.5", "Bills", "", time.Date(2026, 10, 3, 10, 0, 0, 0, time.UTC)),
	}
	summary := stats.Compute(snapshot)
	recent := stats.RankRecent(snapshot, RecentLimit)

	got := newTestFormatter().Render(summary, recent)

	want := strings.Join([]string{
		"CAMPUSCASH - FINANCIAL SUMMARY",
		rule,
		"Generated: 10/19/2026, 3:04:05 PM",
		"",
		"INCOME SUMMARY:",
		"💰 Allowance: KSh 2,000",
		"",
		"Total Income: KSh 2,000",
		"",
		"EXPENSE SUMMARY:",
		"🍔 Food & Drinks: KSh 500",
		"📄 Bills: KSh 1,250.5",
		"",
		"Total Expenses: KSh 1,750.5",
		"",
		rule,
		"NET BALANCE: KSh 249.5",
		rule,
		"",
		"Recent Transactions:",
		"• Today - Food & Drinks: -KSh 500 (lunch)",
		"• Yesterday - Allowance: +KSh 2,000",
		"• Oct 3 - Bills: -KSh 1,250.5",
	}, "\n")

	if got != want {
		t.Errorf("Render() mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRender_OmitsZeroCategories(t *testing.T) {
	snapshot := []models.Transaction{
		record(models.TransactionTypeExpense, "0", "Health", "", fixedNow),
	}
	got := newTestFormatter().Render(stats.Compute(snapshot), snapshot)

	if strings.Contains(got, "Health: KSh") {
		t.Errorf("zero-total category line should be omitted:\n%s", got)
	}
	if !strings.Contains(got, "• Today - Health: -KSh 0") {
		t.Errorf("transaction line should still be listed:\n%s", got)
	}
}

func TestRender_EmptySnapshot(t *testing.T) {
	got := newTestFormatter().Render(stats.Compute(nil), nil)

	if !strings.HasSuffix(got, "Recent Transactions:") {
		t.Errorf("expected document to end after the recent header:\n%s", got)
	}
	if !strings.Contains(got, "NET BALANCE: KSh 0") {
		t.Errorf("expected zero balance:\n%s", got)
	}
}

func TestRender_TruncatesRecent(t *testing.T) {
	var snapshot []models.Transaction
	for i := 0; i < 15; i++ {
		snapshot = append(snapshot, record(models.TransactionTypeExpense, "1", "Other", "", fixedNow))
	}
	got := newTestFormatter().Render(stats.Compute(snapshot), snapshot)

	if n := strings.Count(got, "• "); n != RecentLimit {
		t.Errorf("listed %d transactions, want %d", n, RecentLimit)
	}
}

func TestRender_NegativeBalance(t *testing.T) {
	snapshot := []models.Transaction{
		record(models.TransactionTypeExpense, "12000", "Shopping", "", fixedNow),
	}
	got := newTestFormatter().Render(stats.Compute(snapshot), nil)

	if !strings.Contains(got, "NET BALANCE: KSh -12,000") {
		t.Errorf("expected negative balance with separators:\n%s", got)
	}
}

func TestDateLabel(t *testing.T) {
	f := newTestFormatter()

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"start of today", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "Today"},
		{"end of yesterday", time.Date(2026, 10, 18, 23, 59, 59, 0, time.UTC), "Yesterday"},
		{"two days ago", time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC), "Oct 17"},
		{"previous year", time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC), "Jan 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.DateLabel(tt.at); got != tt.want {
				t.Errorf("DateLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateLabel_UsesFormatterLocation(t *testing.T) {
	f := newTestFormatter()
	f.Location = time.FixedZone("EAT", 3*60*60)

	// 22:30 UTC on the 18th is already the 19th in UTC+3.
	at := time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC)
	if got := f.DateLabel(at); got != "Today" {
		t.Errorf("DateLabel() = %q, want Today", got)
	}
}

func TestFormatAmount(t *testing.T) {
	p := message.NewPrinter(language.AmericanEnglish)

	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567.8", "1,234,567.8"},
		{"42.25", "42.25"},
	}

	for _, tt := range tests {
		if got := FormatAmount(p, decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	got := Filename(time.UnixMilli(1760886245000))
	if got != "campuscash-summary-1760886245000.txt" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestDocument(t *testing.T) {
	doc := newTestFormatter().Document(stats.Compute(nil), nil)
	if doc.Filename != Filename(fixedNow) {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if !strings.HasPrefix(doc.Content, "CAMPUSCASH - FINANCIAL SUMMARY") {
		t.Errorf("Content = %q", doc.Content)
	}
}
