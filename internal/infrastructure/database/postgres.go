package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/repositories"
)

// Open creates a new SQL database connection for the given driver
// ("postgres" or "sqlite"). SQL statements are logged at Info level
// outside production. Driver errors are translated so unique violations
// surface as gorm.ErrDuplicatedKey.
func Open(driver, dsn string, production bool) (*gorm.DB, error) {
	level := logger.Info
	if production {
		level = logger.Warn
	}
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	switch driver {
	case "postgres", "":
		return gorm.Open(postgres.Open(dsn), config)
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), config)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// AutoMigrate creates or updates the user and activity tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}, &repositories.DBActivity{}); err != nil {
		return fmt.Errorf("failed to migrate users tables: %w", err)
	}
	return nil
}
