package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"

	"campuscash/internal/categories"
	"campuscash/internal/export"
	"campuscash/internal/models"
	"campuscash/internal/services"
	"campuscash/internal/store"
)

const usage = `usage: campuscash <command> [flags]

commands:
  add         record a transaction (-type, -amount, -category, -note)
  list        show transactions, most recent first
  delete ID   remove a transaction
  stats       print totals and the expense breakdown as JSON
  export      write the plain-text summary (-o file, default stdout)
  categories  list the category tables`

var errUsage = errors.New(usage)

// app runs CLI commands against the local owner's data.
type app struct {
	transactions services.TransactionServicer
	stats        services.StatsServicer
	tables       categories.Tables
	formatter    *export.Formatter
	out          io.Writer
}

func (a *app) dispatch(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return a.add(rest)
	case "list":
		return a.list()
	case "delete":
		return a.delete(rest)
	case "stats":
		return a.printStats()
	case "export":
		return a.export(rest)
	case "categories":
		return a.printCategories()
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func (a *app) add(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	kind := fs.String("type", string(models.TransactionTypeExpense), "income or expense")
	amount := fs.String("amount", "", "amount, e.g. 250 or 99.50")
	category := fs.String("category", "", "category name")
	note := fs.String("note", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// An entry without an amount or a category is dropped without complaint.
	if strings.TrimSpace(*amount) == "" || strings.TrimSpace(*category) == "" {
		return nil
	}

	value, err := decimal.NewFromString(strings.TrimSpace(*amount))
	if err != nil {
		return fmt.Errorf("invalid amount %q", *amount)
	}

	t, err := a.transactions.CreateTransaction(store.LocalOwner, models.TransactionType(*kind), value, strings.TrimSpace(*category), *note)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, t.ID)
	return nil
}

func (a *app) list() error {
	transactions, err := a.transactions.GetUserTransactions(store.LocalOwner)
	if err != nil {
		return err
	}

	p := message.NewPrinter(a.formatter.Language)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, t := range transactions {
		sign := "+"
		if t.Type == models.TransactionTypeExpense {
			sign = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%s %s\t%s\n",
			t.ID, a.formatter.DateLabel(t.Date), t.Category,
			sign, a.formatter.Currency, export.FormatAmount(p, t.Amount), t.Note)
	}
	return w.Flush()
}

func (a *app) delete(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: campuscash delete ID")
	}
	return a.transactions.DeleteTransaction(store.LocalOwner, args[0])
}

func (a *app) printStats() error {
	summary, err := a.stats.GetStats(store.LocalOwner)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func (a *app) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	output := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := a.stats.ExportSummary(store.LocalOwner)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = fmt.Fprintln(a.out, doc.Content)
		return err
	}
	if err := os.WriteFile(*output, []byte(doc.Content+"\n"), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintln(a.out, *output)
	return nil
}

func (a *app) printCategories() error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, kind := range []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense} {
		for _, c := range a.tables.For(kind) {
			fmt.Fprintf(w, "%s\t%s %s\n", kind, c.Icon, c.Name)
		}
	}
	return w.Flush()
}
