package cmd

import (
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/config"
)

var migrationsPath string

var MigrateCmd = &cobra.Command{
	Use:   MigrateCmdName,
	Short: MigrateCmdShort,
	Long:  MigrateCmdLong,
	Run:   migrateCmdFunc(),
}

func init() {
	MigrateCmd.Flags().StringVar(&migrationsPath, "path", "db/migrations", "migrations directory")
}

func migrateCmdFunc() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {

		_ = godotenv.Load()
		cfg := config.Load()
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is required for migrations")
		}

		m, err := migrate.New("file://"+migrationsPath, "sqlite3://"+cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("migration init failed: %v", err)
		}
		defer m.Close()

		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Println("migrations applied")
	}
}
