package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go-warehouse-api/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

// NewDB opens a fresh in-memory SQLite database with the full schema. Each
// call gets its own named database so parallel tests never share state.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:warehouse_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Sequence{},
		&model.Admin{},
		&model.Warehouse{},
		&model.WarehouseSection{},
		&model.Employee{},
		&model.Product{},
		&model.SubProduct{},
		&model.Item{},
		&model.Supplier{},
		&model.Carrier{},
		&model.Shipment{},
		&model.ShipmentItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SeedWarehouse inserts a minimal warehouse.
func SeedWarehouse(t *testing.T, db *gorm.DB, name string) *model.Warehouse {
	t.Helper()
	warehouse := &model.Warehouse{
		Name:         name,
		Location:     "Test City",
		Size:         1000,
		CapacityUnit: "sqm",
	}
	if err := db.Create(warehouse).Error; err != nil {
		t.Fatalf("failed to seed warehouse: %v", err)
	}
	return warehouse
}

// SeedSection inserts a section for the given warehouse.
func SeedSection(t *testing.T, db *gorm.DB, warehouse *model.Warehouse, name string) *model.WarehouseSection {
	t.Helper()
	section := &model.WarehouseSection{
		Name:        name,
		WarehouseID: warehouse.ID,
		SectionType: "dry",
		IsAvailable: true,
	}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("failed to seed section: %v", err)
	}
	return section
}
