// Command campuscash is the single-user CampusCash tracker. All data lives in
// one SQLite file on this machine.
package main

import (
	"fmt"
	"os"

	"campuscash/internal/categories"
	"campuscash/internal/config"
	"campuscash/internal/events"
	"campuscash/internal/export"
	"campuscash/internal/logger"
	"campuscash/internal/services"
	"campuscash/internal/store"
	"campuscash/internal/store/sqliteblob"
)

func main() {
	logger.Init("cli")
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "campuscash:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	blobs, err := sqliteblob.Open(cfg.LocalStorePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			logger.Get().Warnf("store close error: %v", err)
		}
	}()

	local, err := store.OpenLocalStore(blobs)
	if err != nil {
		return err
	}

	tables := categories.Default()
	formatter := export.New(tables, cfg.CurrencyLabel, cfg.Locale)
	a := &app{
		transactions: services.NewTransactionService(local, tables, events.NopPublisher{}),
		stats:        services.NewStatsService(local, formatter),
		tables:       tables,
		formatter:    formatter,
		out:          os.Stdout,
	}
	return a.dispatch(args)
}
