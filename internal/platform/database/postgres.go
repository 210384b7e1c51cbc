package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authdomain "github.com/fintrack/household-budget/internal/auth/domain"
	budgetdomain "github.com/fintrack/household-budget/internal/budget/domain"
)

// NewPostgresDB opens the connection pool.
func NewPostgresDB(dsn string, maxIdleConns int, maxOpenConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("acquiring sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates the schema and keeps the tables in sync with the entities.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS budget").Error; err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return db.AutoMigrate(
		&authdomain.User{},
		&budgetdomain.Account{},
		&budgetdomain.Transaction{},
	)
}
