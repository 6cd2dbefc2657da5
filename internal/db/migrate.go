package db

import (
	"realty_portal/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table owned by the service, parents before children
func Models() []any {
	return []any{
		&domain.Admin{},
		&domain.Listing{}, &domain.ListingImage{}, &domain.Room{},
		&domain.GalleryPost{}, &domain.GalleryImage{},
		&domain.ContactMessage{},
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
