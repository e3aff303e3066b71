package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory/internal/models"
	"inventory/internal/repositories"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Manufacturer{},
		&models.Part{},
		&models.Checkout{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestService wires a service over a fresh in-memory database. The clock
// is pinned so UPC date segments are deterministic within a test.
func newTestService(t *testing.T) (*inventoryService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewInventoryService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewManufacturerRepository(db),
		repositories.NewPartRepository(db),
		repositories.NewCheckoutRepository(db),
		nil,
	).(*inventoryService)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	}
	return svc, db
}

func mustAddUser(t *testing.T, svc *inventoryService, first, last, email string) string {
	t.Helper()
	id, err := svc.AddUser(first, last, email)
	if err != nil {
		t.Fatalf("AddUser(%s %s): %v", first, last, err)
	}
	return id
}

func mustAddPart(t *testing.T, svc *inventoryService, desc, mfr, placement string) string {
	t.Helper()
	upc, err := svc.AddPart(AddPartInput{
		Description: desc,
		MfrName:     mfr,
		MfrPN:       "PN-" + placement,
		Placement:   placement,
	})
	if err != nil {
		t.Fatalf("AddPart(%s): %v", desc, err)
	}
	return upc
}
