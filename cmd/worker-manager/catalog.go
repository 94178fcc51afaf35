// cmd/worker-manager/catalog.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/config"
	"consultation-workers/internal/common/database"
	"consultation-workers/internal/common/logger"
)

// buildCatalog wires the configured catalog source and optional search index into a store.
// The returned func releases any database connection the source holds.
func buildCatalog(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (*catalog.Store, func(), error) {
	closer := func() {}

	var source catalog.Source
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		source = catalog.FileSource{Patterns: cfg.Catalog.SeedPaths}

	case config.CatalogSourcePostgres, config.CatalogSourceSQLite:
		var db *database.SQLClient
		err := retryWithBackoff(func() error {
			var err error
			if cfg.Catalog.Source == config.CatalogSourcePostgres {
				db, err = database.NewPostgres(cfg.Database.Postgres)
			} else {
				db, err = database.NewSQLite(cfg.Database.SQLite)
			}
			if err != nil {
				return err
			}
			return db.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Catalog database connection")
		if err != nil {
			return nil, closer, err
		}
		closer = func() { db.Close() }

		sqlSource := catalog.NewSQLSource(db)
		if err := sqlSource.Migrate(ctx); err != nil {
			closer()
			return nil, func() {}, fmt.Errorf("catalog migration failed: %w", err)
		}
		source = sqlSource
		zapLog.Info("Catalog database connected", zap.String("driver", sqlSource.Name()))

	default:
		source = catalog.DefaultSource{}
	}

	var index catalog.SearchIndex
	if cfg.Catalog.SearchEnabled {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			closer()
			return nil, func() {}, err
		}
		if err := esClient.Ping(ctx); err != nil {
			zapLog.Warn("Elasticsearch unreachable, catalog search falls back to in-memory", zap.Error(err))
		} else {
			index = catalog.NewESIndex(esClient.Client, cfg.Catalog.SearchIndex)
			zapLog.Info("Catalog search index enabled", zap.String("index", cfg.Catalog.SearchIndex))
		}
	}

	store, err := catalog.NewStore(catalog.Options{
		Source:     source,
		Index:      index,
		MaxPerTier: cfg.Catalog.MaxPackagesPerTier,
		Logger:     log,
	})
	if err != nil {
		closer()
		return nil, func() {}, err
	}
	return store, closer, nil
}
