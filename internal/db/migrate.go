package db

import (
	"fmt"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/config"
	"github.com/diewo77/bougeotte/internal/models"
)

// Migrate brings the schema up to date. With MIGRATIONS=1 and a postgres DSN
// the SQL files under ./migrations run via golang-migrate; everywhere else
// (notably the sqlite dev default) AutoMigrate keeps things simple.
func Migrate(conn *gorm.DB, dsn string) error {
	if migrationsEnabled() && IsPostgresDSN(dsn) {
		return runSQLMigrations(dsn)
	}
	modelsToMigrate := []interface{}{
		&models.Categorie{}, &models.Organisme{}, &models.MoveSession{},
	}
	for _, m := range modelsToMigrate {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func migrationsEnabled() bool {
	return config.ParseBool("MIGRATIONS", false)
}

// IsPostgresDSN reports whether the DSN selects the postgres driver.
func IsPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// runSQLMigrations executes migrations in ./migrations using the file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
