// ABOUTME: Wires configuration, logging, storage, the side store and codecs into one App.
// ABOUTME: The CLI and the MCP server both start from Open.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitnotes/internal/backup"
	"github.com/harperreed/fitnotes/internal/config"
	"github.com/harperreed/fitnotes/internal/csvcodec"
	"github.com/harperreed/fitnotes/internal/kvstore"
	"github.com/harperreed/fitnotes/internal/logger"
	"github.com/harperreed/fitnotes/internal/seed"
	"github.com/harperreed/fitnotes/internal/storage"
	"github.com/harperreed/fitnotes/internal/store"
)

// App holds every long-lived component.
type App struct {
	Config *config.Config
	Log    *log.Logger
	DB     *storage.DB
	KV     *kvstore.Store
	Store  *store.Store
	Backup *backup.Codec
	CSV    *csvcodec.Codec

	logCloser io.Closer
}

// Options adjust how Open starts the app.
type Options struct {
	// SkipSeed disables first-run demo seeding regardless of config.
	SkipSeed bool
}

// Open starts every component described by cfg, loads the store and runs
// first-run seeding when enabled.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	l, closer, err := logger.New(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir()})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	a := &App{Config: cfg, Log: l, logCloser: closer}

	a.DB, err = cfg.OpenStorage()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	a.KV, err = kvstore.OpenWithFallback(cfg.KVDir(), l)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open side store: %w", err)
	}

	a.Store = store.New(a.DB, a.KV, l)
	if err := a.Store.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}

	if cfg.SeedDemo && !opts.SkipSeed {
		seed.New(a.DB, a.KV, l).Run(ctx, a.Store)
	}

	a.Backup = backup.New(a.DB, a.KV, l)
	a.CSV = csvcodec.New(a.DB, a.KV, l)

	l.Debug("app ready", "db", a.DB.Path(), "kv_detached", a.KV.Detached())
	return a, nil
}

// Reload refreshes the store's replica after writes that bypassed it, such
// as a backup restore or a CSV import.
func (a *App) Reload(ctx context.Context) error {
	return a.Store.Load(ctx)
}

// Close releases every component that was opened.
func (a *App) Close() error {
	var errs []error
	if a.KV != nil {
		errs = append(errs, a.KV.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
