// Package testutil provides a throwaway migrated database for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"takeout-api/config"

	"gorm.io/gorm"
)

// NewDB opens a fresh sqlite file under t.TempDir with every model migrated
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
