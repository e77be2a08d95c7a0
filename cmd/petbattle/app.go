package main

import (
	"github.com/pawhaven/petbattle/internal/config"
	"github.com/pawhaven/petbattle/internal/logging"
	"github.com/pawhaven/petbattle/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a petbattle_config.json with an 'item_list' array of consumables (key,name,effect) and optional keys: server.address, database_path, action_timeout_seconds",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
