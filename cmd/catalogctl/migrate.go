package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"book-catalog/internal/config"
	"book-catalog/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations (goose up)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
}

func runMigrate(ctx context.Context, out io.Writer, cfg *config.Config) error {
	var (
		db      *sql.DB
		dialect database.Dialect
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return err
		}
		pg := database.NewPostgresDB(dbConfig)
		if err := pg.Connect(ctx); err != nil {
			return err
		}
		defer pg.Close()
		db, dialect = pg.SQLDB(), database.DialectPostgres

	case config.DriverSQLite:
		sqliteDB, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		defer sqliteDB.Close()
		db, dialect = sqliteDB, database.DialectSQLite

	default:
		return fmt.Errorf("storage driver %q has no migrations", cfg.Storage.Driver)
	}

	if err := database.Migrate(ctx, db, dialect); err != nil {
		return err
	}
	fmt.Fprintf(out, "migrations applied (%s)\n", dialect)
	return nil
}
