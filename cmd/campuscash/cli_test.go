package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"campuscash/internal/categories"
	"campuscash/internal/events"
	"campuscash/internal/export"
	"campuscash/internal/logger"
	"campuscash/internal/services"
	"campuscash/internal/store"
)

func init() {
	logger.Init("test")
}

func newTestApp(t *testing.T) (*app, *bytes.Buffer, *store.MemoryBlobStore) {
	t.Helper()

	blobs := store.NewMemoryBlobStore()
	local, err := store.OpenLocalStore(blobs)
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}

	tables := categories.Default()
	formatter := export.New(tables, "KSh", language.AmericanEnglish)
	formatter.Location = time.UTC

	out := &bytes.Buffer{}
	return &app{
		transactions: services.NewTransactionService(local, tables, events.NopPublisher{}),
		stats:        services.NewStatsService(local, formatter),
		tables:       tables,
		formatter:    formatter,
		out:          out,
	}, out, blobs
}

func TestDispatch_NoArgs(t *testing.T) {
	a, _, _ := newTestApp(t)
	if err := a.dispatch(nil); err == nil {
		t.Fatal("expected usage error")
	}
	if err := a.dispatch([]string{"frobnicate"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v, want unknown command", err)
	}
}

func TestAdd_IgnoresIncompleteEntries(t *testing.T) {
	a, out, blobs := newTestApp(t)

	for _, args := range [][]string{
		{"add", "-category", "Transport"},
		{"add", "-amount", "50"},
		{"add", "-amount", "  ", "-category", "Transport"},
	} {
		if err := a.dispatch(args); err != nil {
			t.Errorf("dispatch(%v) error = %v", args, err)
		}
	}

	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
	if blobs.Saves() != 0 {
		t.Errorf("saves = %d, want 0", blobs.Saves())
	}
}

func TestAdd_RejectsBadInput(t *testing.T) {
	a, _, _ := newTestApp(t)

	if err := a.dispatch([]string{"add", "-amount", "lots", "-category", "Transport"}); err == nil {
		t.Error("expected error for non-numeric amount")
	}
	if err := a.dispatch([]string{"add", "-amount", "1e30000000", "-category", "Transport"}); err == nil {
		t.Error("expected error for an amount beyond the column limit")
	}
	if err := a.dispatch([]string{"add", "-amount", "10", "-category", "Allowance"}); err == nil {
		t.Error("expected error for income category on an expense")
	}
}

func TestAddThenStats(t *testing.T) {
	a, out, blobs := newTestApp(t)

	if err := a.dispatch([]string{"add", "-amount", "500", "-category", "Food & Drinks"}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if err := a.dispatch([]string{"add", "-type", "income", "-amount", "2000", "-category", "Allowance"}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if blobs.Saves() != 2 {
		t.Errorf("saves = %d, want one per mutation", blobs.Saves())
	}

	out.Reset()
	if err := a.dispatch([]string{"stats"}); err != nil {
		t.Fatalf("stats: %v", err)
	}

	var summary map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("decode stats: %v\n%s", err, out.String())
	}
	if summary["totalIncome"] != 2000.0 || summary["totalExpenses"] != 500.0 || summary["balance"] != 1500.0 {
		t.Errorf("unexpected totals: %v", summary)
	}
	breakdown := summary["categoryBreakdown"].(map[string]interface{})
	if len(breakdown) != 1 || breakdown["Food & Drinks"] != 500.0 {
		t.Errorf("categoryBreakdown = %v", breakdown)
	}
}

func TestListAndDelete(t *testing.T) {
	a, out, _ := newTestApp(t)

	if err := a.dispatch([]string{"add", "-amount", "80", "-category", "Transport", "-note", "bus"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := strings.TrimSpace(out.String())

	out.Reset()
	if err := a.dispatch([]string{"list"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	line := out.String()
	for _, want := range []string{id, "Transport", "-KSh 80", "bus"} {
		if !strings.Contains(line, want) {
			t.Errorf("list output missing %q: %q", want, line)
		}
	}

	if err := a.dispatch([]string{"delete", id}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := a.dispatch([]string{"delete", id}); err == nil {
		t.Error("expected not-found on second delete")
	}

	out.Reset()
	if err := a.dispatch([]string{"list"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("list after delete = %q, want empty", out.String())
	}
}

func TestExport_ToFile(t *testing.T) {
	a, out, _ := newTestApp(t)

	if err := a.dispatch([]string{"add", "-type", "income", "-amount", "1500", "-category", "Gift"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	path := filepath.Join(t.TempDir(), "summary.txt")
	out.Reset()
	if err := a.dispatch([]string{"export", "-o", path}); err != nil {
		t.Fatalf("export: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "CAMPUSCASH - FINANCIAL SUMMARY") {
		t.Errorf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "Total Income: KSh 1,500") {
		t.Errorf("missing income total:\n%s", text)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Errorf("stdout = %q, want path", out.String())
	}
}

func TestCategories(t *testing.T) {
	a, out, _ := newTestApp(t)
	if err := a.dispatch([]string{"categories"}); err != nil {
		t.Fatalf("categories: %v", err)
	}
	for _, want := range []string{"Allowance", "Food & Drinks"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}
