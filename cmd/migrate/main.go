package main

import (
	"context" // Seeding context

	"github.com/sirupsen/logrus" // Logrus for structured logging

	"realty_portal/internal/config" // Custom import path (Config)
	"realty_portal/internal/db"     // Custom import path (Database)
	"realty_portal/internal/store"  // Admin seeding
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}

	// Bootstrap admin when both seed variables are set
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}
	created, err := store.NewAdminStore(gdb).EnsureAdmin(context.Background(), cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		logrus.Fatalf("seeding admin failed: %v", err)
	}
	logrus.WithFields(logrus.Fields{"email": store.NormalizeEmail(cfg.SeedAdminEmail), "created": created}).Info("bootstrap admin checked")
}
