package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. Postgres uses the versioned SQL
// migrations; the other drivers fall back to AutoMigrate plus secondary indexes.
func Migrate(db *gorm.DB, driver string, log *zap.Logger) error {
	log.Info("Running database migrations...", zap.String("driver", driver))

	var err error
	if driver == "postgres" {
		err = runSQLMigrations(db, log)
	} else {
		err = AutoMigrate(db)
	}
	if err != nil {
		return err
	}

	log.Info("Database migrations completed")
	return nil
}

func runSQLMigrations(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		log.Warn("Database schema is dirty", zap.Uint("version", version))
	} else {
		log.Info("Database schema version", zap.Uint("version", version))
	}
	return nil
}

// AutoMigrate creates the tables from the models and adds the indexes the
// struct tags cannot express.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return AddIndexes(db)
}

// AddIndexes adds the query-path indexes used by search and listings.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// project application counts and member lookups
		{"applications", "idx_applications_project_status", "project_id, status"},
		{"applications", "idx_applications_user_status", "user_id, status"},

		// reset token housekeeping
		{"password_reset_tokens", "idx_password_reset_tokens_expires_at", "expires_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
