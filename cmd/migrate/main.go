// CLI tool to apply pending PostgreSQL migrations for the postgres storage
// driver. The server applies the same embedded migrations on startup; this
// runs them ahead of a deploy, or from MIGRATIONS_DIR when it is set.
// Usage: go run ./cmd/migrate
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lg/peso-certo-api/internal/store"
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using process environment")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	migrations, err := loadMigrations(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		log.Fatal("Failed to load migrations", zap.Error(err))
	}
	if len(migrations) == 0 {
		log.Fatal("No migration files found")
	}

	ctx := context.Background()
	db, err := store.OpenPostgres(ctx, dbURL)
	if err != nil {
		log.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer db.Close()

	applied, err := db.Migrate(ctx, migrations)
	for _, name := range applied {
		log.Info("Applied migration", zap.String("migration", name))
	}
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	if len(applied) == 0 {
		log.Info("No pending migrations")
		return
	}
	log.Info("Migrations applied", zap.Int("count", len(applied)))
}

// loadMigrations reads dir when it is set and the embedded files otherwise.
func loadMigrations(dir string) ([]store.Migration, error) {
	if dir == "" {
		return store.EmbeddedMigrations()
	}
	return store.LoadMigrations(os.DirFS(dir))
}
