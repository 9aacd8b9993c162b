// Package app wires the stores together and provides the views that span several of them.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recipe-box/internal/catalog"
	"recipe-box/internal/chaos"
	"recipe-box/internal/clipper"
	"recipe-box/internal/config"
	"recipe-box/internal/database"
	"recipe-box/internal/metrics"
	"recipe-box/internal/planner"
	"recipe-box/internal/recipe"
	"recipe-box/internal/settings"
	"recipe-box/internal/shopping"
	"recipe-box/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	Catalog  *catalog.Catalog
	Recipes  *recipe.Store
	Settings *settings.Store
	Shopping *shopping.Store
	Planner  *planner.Store
	Chaos    *chaos.Store
	Clipper  *clipper.Clipper

	// Metrics is nil when METRICS_ENABLED is false.
	Metrics *metrics.Store

	log      *zap.Logger
	db       *database.DB
	closeKV  func() error
	dataPath string
}

// Options tweaks store construction, mostly for tests.
type Options struct {
	PlannerOptions []planner.Option
	ChaosOptions   []chaos.Option
}

// New opens the configured storage backend and loads every store from it.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	var db *database.DB
	if cfg.StorageBackend == config.BackendSQLite || cfg.MetricsEnabled {
		var err error
		db, err = database.NewDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	kv, closeKV, err := storage.Open(ctx, cfg, db, log)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}

	var metricsStore *metrics.Store
	if cfg.MetricsEnabled {
		metricsStore = metrics.NewStore(db.SQL)
		kv = storage.Instrument(kv, storage.Recorders(metricsStore, metrics.PromRecorder{}), log)
	}

	a, err := Load(ctx, kv, log, Options{})
	if err != nil {
		closeKV()
		closeDB(db)
		return nil, err
	}
	a.Metrics = metricsStore
	a.db = db
	a.closeKV = closeKV
	a.dataPath = cfg.DataPath

	log.Info("recipe box ready",
		zap.String("storage", cfg.StorageBackend),
		zap.Bool("metrics", cfg.MetricsEnabled))
	return a, nil
}

// Load builds every store on top of kv. The stores are loaded concurrently.
func Load(ctx context.Context, kv storage.Store, log *zap.Logger, opts Options) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a := &App{
		Catalog: cat,
		Clipper: clipper.NewClipper(log),
		log:     log,
		closeKV: func() error { return nil },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := recipe.NewStore(gctx, kv, cat, log)
		a.Recipes = s
		return err
	})
	g.Go(func() error {
		s, err := settings.NewStore(gctx, kv, log)
		a.Settings = s
		return err
	})
	g.Go(func() error {
		s, err := shopping.NewStore(gctx, kv, log)
		a.Shopping = s
		return err
	})
	g.Go(func() error {
		s, err := planner.NewStore(gctx, kv, log, opts.PlannerOptions...)
		a.Planner = s
		return err
	})
	g.Go(func() error {
		s, err := chaos.NewStore(gctx, kv, cat, log, opts.ChaosOptions...)
		a.Chaos = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	return a, nil
}

// DataPath is the directory of the file backend, empty when the app was built with Load.
func (a *App) DataPath() string {
	return a.dataPath
}

// Close releases the storage backend and the database.
func (a *App) Close() error {
	return errors.Join(a.closeKV(), closeDB(a.db))
}

func closeDB(db *database.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
