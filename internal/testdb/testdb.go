// Package testdb opens throwaway sqlite databases for package tests.
package testdb

import (
	"testing"

	"openvdm.io/openvdm/configs/configsdatabase"
	"openvdm.io/openvdm/database/migrations"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated in-memory database. A single connection is kept
// open so every statement (and transaction) sees the same memory database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), configsdatabase.GormConfig(""))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrations.RunAll(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
