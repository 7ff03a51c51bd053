package main

import (
	"fmt"
	"log/slog"

	"github.com/siftline/siftline/internal/config"
	"github.com/siftline/siftline/internal/storage"
	"github.com/spf13/viper"
)

// openStorage opens the configured database and brings its schema up to date.
// The caller owns the returned store and must Close it.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/siftline/siftline.db"
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func closeStorage(db *storage.SQLiteStorage) {
	if err := db.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}
