package main

import (
	"fmt"

	"github.com/spf13/viper"

	appconfig "github.com/zencompta/zencompta-engine/internal/config"
	"github.com/zencompta/zencompta-engine/internal/service"
	"github.com/zencompta/zencompta-engine/internal/storage"
)

// openStorage opens the configured database.
func openStorage() (service.Storage, error) {
	dbPath := appconfig.ExpandPath(viper.GetString("database.path"))
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	return store, nil
}
