// Package storetest provides throwaway in-memory databases for tests.
package storetest

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/dairy-ledger/pkg/database"
	"github.com/tair/dairy-ledger/pkg/store"
)

// NewDB opens a private in-memory SQLite database and migrates models into it
func NewDB(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// A single connection serialises transactions the way row locks would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}

// NewGateway returns a traced gateway over a fresh database
func NewGateway(t testing.TB, models ...interface{}) store.Gateway {
	t.Helper()
	return store.WithTracing(store.NewGormGateway(NewDB(t, models...), 0))
}
