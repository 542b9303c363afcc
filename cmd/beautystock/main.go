package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"beautystock/internal/cli"
	"beautystock/internal/config"
	applog "beautystock/internal/log"
	"beautystock/internal/repos"
	"beautystock/internal/services"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	logger, err := applog.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("[log] %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config.loaded", cfg.Fields())

	storage, closeStorage, err := openStorage(cfg)
	if err != nil {
		logger.Error("storage.open", err, map[string]any{"driver": cfg.StoreDriver})
		log.Fatalf("[storage] %v", err)
	}
	defer func() { _ = closeStorage() }()

	store := services.NewCatalogStore(storage, logger)
	if err := store.Load(repos.DefaultProducts()); err != nil {
		fmt.Fprintf(os.Stderr, "could not load the catalog: %v\n", err)
		_ = closeStorage()
		os.Exit(1)
	}

	cli.NewShell(store, os.Stdin, os.Stdout, logger, cfg.LowStockThreshold).Run()
	logger.Info("shutdown", nil)
}

func openStorage(cfg config.Config) (services.Storage, func() error, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, err
	}
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := repos.OpenDB(cfg.DBPath())
		if err != nil {
			return nil, nil, err
		}
		return repos.NewSQLiteStore(db), db.Close, nil
	default:
		fs := afero.NewOsFs()
		return repos.NewCSVStore(fs, cfg.CatalogPath(), cfg.TransactionPath()), func() error { return nil }, nil
	}
}
