package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the shared gorm handle used by every handler. One
// process-wide pool, created at boot and injected where needed.
func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError so a unique-index violation surfaces as
	// gorm.ErrDuplicatedKey instead of a driver-specific error.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}
