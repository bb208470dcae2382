package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github/chapool/tron-custody/internal/config"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

const migrationsDir = "migrations"

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Applies pending database migrations",
		Run: func(_ *cobra.Command, _ []string) {
			if err := applyMigrations(); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply migrations")
			}
		},
	}
}

func applyMigrations() error {
	cfg := config.DefaultServiceConfigFromEnv()

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := migrate.Exec(db, "postgres", &migrate.FileMigrationSource{Dir: migrationsDir}, migrate.Up)
	if err != nil {
		return err
	}

	log.Info().Int("applied", n).Msg("Migrations applied")

	return nil
}
