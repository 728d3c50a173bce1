package db

import (
	"fmt"

	"car_rental_manager/models"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the embedded SQLite store at path and migrates the schema.
// The handle is owned by the caller; close it through Close when the
// application shuts down.
func Connect(path string) (*gorm.DB, error) {
	dsn := path
	if path == ":memory:" {
		// A named shared-cache DSN keeps the in-memory database alive
		// across pooled connections.
		dsn = "file::memory:?cache=shared"
	}

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite store")
	}

	// Single-user application: one connection is enough and keeps every
	// statement on the connection that holds the shared in-memory cache.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, errors.Wrap(err, "access sql db")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, errors.Wrap(err, "enable foreign keys")
	}

	if err := Migrate(conn); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}
	return conn, nil
}

// Close tears down the store handle.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Vehicle{}, &models.Customer{}, &models.RentalRecord{}); err != nil {
		return err
	}

	// At most one open rental per vehicle.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_vehicle
	  ON %s (vehicle_id)
	  WHERE return_date IS NULL;
	`, models.RentalRecordTable, models.RentalRecordTable)).Error; err != nil {
		return err
	}

	return nil
}
