package model_test

import (
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/testutil"
)

func TestNextSequenceIncrements(t *testing.T) {
	db := testutil.NewDB(t)

	first, err := model.NextSequence(db, "test_counter")
	if err != nil {
		t.Fatalf("first NextSequence: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected first value 1, got %d", first)
	}

	second, err := model.NextSequence(db, "test_counter")
	if err != nil {
		t.Fatalf("second NextSequence: %v", err)
	}
	if second != 2 {
		t.Fatalf("expected second value 2, got %d", second)
	}
}

func TestNextSequenceIndependentNames(t *testing.T) {
	db := testutil.NewDB(t)

	for i := 0; i < 3; i++ {
		if _, err := model.NextSequence(db, "counter_a"); err != nil {
			t.Fatalf("counter_a: %v", err)
		}
	}

	value, err := model.NextSequence(db, "counter_b")
	if err != nil {
		t.Fatalf("counter_b: %v", err)
	}
	if value != 1 {
		t.Fatalf("expected counter_b to start at 1, got %d", value)
	}
}

func TestDisplayIDsAssignedOnCreate(t *testing.T) {
	db := testutil.NewDB(t)

	w1 := testutil.SeedWarehouse(t, db, "Alpha")
	w2 := testutil.SeedWarehouse(t, db, "Beta")

	if w1.WarehouseID != 1 || w2.WarehouseID != 2 {
		t.Fatalf("expected sequential warehouse ids 1 and 2, got %d and %d", w1.WarehouseID, w2.WarehouseID)
	}

	// Another entity type draws from its own sequence.
	supplier := &model.Supplier{
		Name:          "Acme",
		ContactPerson: "Jane Doe",
		Phone:         "555-0100",
		Email:         "acme@example.com",
		Address:       "1 Main St",
	}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	if supplier.SupplierID != 1 {
		t.Fatalf("expected supplier_id 1, got %d", supplier.SupplierID)
	}
}
