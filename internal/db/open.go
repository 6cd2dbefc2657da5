package db

import (
	"fmt"  // Error formatting
	"time" // Slow query threshold

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM logger
)

// Dialector picks the GORM driver for DB_DRIVER
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql", "":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// Open connects to the database and routes GORM logs through logrus
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	level := logger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info // Log every statement in debug
	}
	gormLogger := logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}
