package test

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewFileBasedTestDB creates a new file-based SQLite database for testing.
// It returns the database connection and the path to the temporary directory.
func NewFileBasedTestDB() (*gorm.DB, string, error) {
	tmpDir, err := os.MkdirTemp("", "booking_test")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	dbPath := filepath.Join(tmpDir, "booking_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		// Try to clean up the temporary directory, but don't fail if cleanup fails
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			fmt.Printf("Warning: failed to remove temporary directory after database error: %v\n", rmErr)
		}
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; concurrent scenarios queue on one connection
	sqlDB, err := db.DB()
	if err != nil {
		CleanupTestDB(db, tmpDir)
		return nil, "", fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, tmpDir, nil
}

// CleanupTestDB closes the database connection and removes the temporary directory.
func CleanupTestDB(db *gorm.DB, tmpDir string) {
	sqlDB, err := db.DB()
	if err == nil && sqlDB != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			fmt.Printf("Error closing database connection: %v\n", closeErr)
		}
	}
	if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
		fmt.Printf("Error removing temporary directory: %v\n", rmErr)
	}
}

// RunMigrations runs all database migrations for the test database.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&BookingRecord{},
		&TokenRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
