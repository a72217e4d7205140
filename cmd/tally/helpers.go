package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/storage"
)

// openStorage opens the configured SQLite database and runs any pending
// migrations. Callers must Close the returned storage.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("storage.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open the expense database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("could not upgrade the expense database schema", err)
	}

	return store, nil
}

// currentTaxYear returns the Australian financial year the given date falls
// in, named by its ending calendar year (July 2025 is in tax year 2026).
func currentTaxYear(now time.Time) int {
	if now.Month() >= time.July {
		return now.Year() + 1
	}
	return now.Year()
}
