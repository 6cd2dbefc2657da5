package store

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"realty_portal/internal/db"
	"realty_portal/internal/upsert"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func files(names ...string) []upsert.Uploaded {
	out := make([]upsert.Uploaded, len(names))
	for i, n := range names {
		out[i] = upsert.Uploaded{Filename: n, ContentType: "image/png", Data: []byte(n)}
	}
	return out
}

func listingFields() map[string]string {
	return map[string]string{
		"title":    "Duplex in Lekki",
		"type":     "sale",
		"price":    "₦45,000,000",
		"location": "Lekki Phase 1",
	}
}
