// Package export renders the plain-text financial summary that users download.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"campuscash/internal/categories"
	"campuscash/internal/models"
	"campuscash/internal/stats"
)

// RecentLimit is how many ranked transactions the summary lists.
const RecentLimit = 10

var rule = strings.Repeat("═", 47)

// Formatter renders summaries. The zero value is not usable; use New.
type Formatter struct {
	Tables   categories.Tables
	Currency string
	Language language.Tag
	Location *time.Location
	Now      func() time.Time
}

// New returns a Formatter with the given currency label and locale, using
// the local time zone and the wall clock.
func New(tables categories.Tables, currency string, lang language.Tag) *Formatter {
	return &Formatter{
		Tables:   tables,
		Currency: currency,
		Language: lang,
		Location: time.Local,
		Now:      time.Now,
	}
}

// Render produces the complete summary document. recent is expected to be
// ranked already (see stats.RankRecent); it is truncated to RecentLimit.
func (f *Formatter) Render(summary stats.Summary, recent []models.Transaction) string {
	now := f.Now().In(f.Location)
	p := message.NewPrinter(f.Language)

	var b strings.Builder
	b.WriteString("CAMPUSCASH - FINANCIAL SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("1/2/2006, 3:04:05 PM"))

	b.WriteString("INCOME SUMMARY:\n")
	f.writeCategoryLines(&b, p, f.Tables.Income, summary.IncomeBreakdown)
	fmt.Fprintf(&b, "\nTotal Income: %s\n\n", f.money(p, summary.TotalIncome))

	b.WriteString("EXPENSE SUMMARY:\n")
	f.writeCategoryLines(&b, p, f.Tables.Expense, summary.CategoryBreakdown)
	fmt.Fprintf(&b, "\nTotal Expenses: %s\n\n", f.money(p, summary.TotalExpenses))

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "NET BALANCE: %s\n", f.money(p, summary.Balance))
	b.WriteString(rule + "\n\n")

	b.WriteString("Recent Transactions:\n")
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	for _, t := range recent {
		sign := "+"
		if t.Type == models.TransactionTypeExpense {
			sign = "-"
		}
		fmt.Fprintf(&b, "• %s - %s: %s%s", f.DateLabel(t.Date), t.Category, sign, f.money(p, t.Amount))
		if t.Note != "" {
			fmt.Fprintf(&b, " (%s)", t.Note)
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

// writeCategoryLines emits one line per category with a positive total, in table order.
func (f *Formatter) writeCategoryLines(b *strings.Builder, p *message.Printer, table []categories.Category, totals map[string]decimal.Decimal) {
	for _, c := range table {
		total, ok := totals[c.Name]
		if !ok || !total.IsPositive() {
			continue
		}
		fmt.Fprintf(b, "%s %s: %s\n", c.Icon, c.Name, f.money(p, total))
	}
}

func (f *Formatter) money(p *message.Printer, amount decimal.Decimal) string {
	return f.Currency + " " + FormatAmount(p, amount)
}

// FormatAmount renders amount with the printer's thousands separators and
// at most two fraction digits, none forced.
func FormatAmount(p *message.Printer, amount decimal.Decimal) string {
	return p.Sprintf("%v", number.Decimal(amount.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// DateLabel returns "Today", "Yesterday" or an abbreviated month and day
// such as "Oct 3", relative to the formatter's clock and location.
func (f *Formatter) DateLabel(t time.Time) string {
	now := f.Now().In(f.Location)
	t = t.In(f.Location)

	if sameDay(t, now) {
		return "Today"
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Format("Jan 2")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Filename names a downloaded summary after the moment it was generated.
func Filename(now time.Time) string {
	return fmt.Sprintf("campuscash-summary-%d.txt", now.UnixMilli())
}

// Document is a rendered summary ready to be written or downloaded.
type Document struct {
	Filename string
	Content  string
}

// Document renders the summary and names it after the formatter's clock.
func (f *Formatter) Document(summary stats.Summary, recent []models.Transaction) *Document {
	return &Document{
		Filename: Filename(f.Now()),
		Content:  f.Render(summary, recent),
	}
}
