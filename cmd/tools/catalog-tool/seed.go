// cmd/tools/catalog-tool/seed.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/config"
	"consultation-workers/internal/common/database"
)

type seedFlags struct {
	sqlitePath string
	configPath string
}

func newSeedCmd(flags *catalogFlags) *cobra.Command {
	seed := &seedFlags{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the service_packages table with the selected catalog",
		Long: `seed validates the selected catalog (built-in or --file globs) and writes it
to a SQL catalog database, replacing every existing row. Target a SQLite file
with --sqlite, or point --config at a worker config whose catalog.source is
postgres or sqlite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.loadStore(cmd.Context())
			if err != nil {
				return err
			}

			db, target, err := seed.open()
			if err != nil {
				return err
			}
			defer db.Close()

			src := catalog.NewSQLSource(db)
			if err := src.Migrate(cmd.Context()); err != nil {
				return err
			}
			pkgs := store.Snapshot()
			if err := src.Replace(cmd.Context(), pkgs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d packages into %s.\n", len(pkgs), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed.sqlitePath, "sqlite", "", "SQLite database file to seed")
	cmd.Flags().StringVar(&seed.configPath, "config", "", "worker config file naming the catalog database")
	cmd.MarkFlagsMutuallyExclusive("sqlite", "config")
	return cmd
}

func (s *seedFlags) open() (*database.SQLClient, string, error) {
	if s.sqlitePath != "" {
		db, err := database.NewSQLite(config.SQLiteConfig{Path: s.sqlitePath})
		return db, "sqlite database " + s.sqlitePath, err
	}
	if s.configPath == "" {
		return nil, "", fmt.Errorf("one of --sqlite or --config is required")
	}

	cfg, err := config.LoadFromFile(s.configPath)
	if err != nil {
		return nil, "", err
	}
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := database.NewPostgres(cfg.Database.Postgres)
		return db, "postgres database " + cfg.Database.Postgres.Database, err
	case config.CatalogSourceSQLite:
		db, err := database.NewSQLite(cfg.Database.SQLite)
		return db, "sqlite database " + cfg.Database.SQLite.Path, err
	default:
		return nil, "", fmt.Errorf("catalog.source %q is not a SQL catalog", cfg.Catalog.Source)
	}
}
