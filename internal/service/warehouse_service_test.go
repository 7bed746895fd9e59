package service_test

import (
	"errors"
	"testing"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/internal/testutil"

	"gorm.io/gorm"
)

func newWarehouseService(t *testing.T) (service.WarehouseService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := service.NewWarehouseService(
		repository.NewWarehouseRepo(db),
		repository.NewSectionRepo(db),
		repository.NewEmployeeRepo(db),
		repository.NewItemRepo(db),
	)
	return svc, db
}

func TestWarehouseRoundTrip(t *testing.T) {
	svc, _ := newWarehouseService(t)

	warehouse := &model.Warehouse{
		Name:         "Central",
		Location:     "Oslo",
		Size:         2500,
		CapacityUnit: "sqm",
	}
	if err := svc.CreateWarehouse(warehouse); err != nil {
		t.Fatalf("CreateWarehouse: %v", err)
	}
	if warehouse.WarehouseID != 1 {
		t.Errorf("expected warehouse_id 1, got %d", warehouse.WarehouseID)
	}

	fetched, err := svc.GetWarehouse(warehouse.ID)
	if err != nil {
		t.Fatalf("GetWarehouse: %v", err)
	}
	if fetched.Name != "Central" {
		t.Errorf("unexpected name: %s", fetched.Name)
	}

	updated, err := svc.UpdateWarehouse(warehouse.ID, &model.Warehouse{Location: "Bergen"})
	if err != nil {
		t.Fatalf("UpdateWarehouse: %v", err)
	}
	if updated.Location != "Bergen" || updated.Name != "Central" {
		t.Errorf("partial update went wrong: %+v", updated)
	}
}

func TestCreateWarehouseValidation(t *testing.T) {
	svc, _ := newWarehouseService(t)

	err := svc.CreateWarehouse(&model.Warehouse{Name: "NoLocation", Size: 10, CapacityUnit: "sqm"})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWarehouseScopedListing(t *testing.T) {
	svc, db := newWarehouseService(t)

	assigned := testutil.SeedWarehouse(t, db, "Mine")
	testutil.SeedWarehouse(t, db, "Other")

	all, err := svc.ListWarehouses(nil)
	if err != nil {
		t.Fatalf("ListWarehouses unscoped: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 warehouses unscoped, got %d", len(all))
	}

	scoped := &model.Admin{Role: model.RoleAdmin, AssignedWarehouses: []model.Warehouse{*assigned}}
	mine, err := svc.ListWarehouses(scoped)
	if err != nil {
		t.Fatalf("ListWarehouses scoped: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != assigned.ID {
		t.Fatalf("expected only the assigned warehouse, got %+v", mine)
	}

	empty := &model.Admin{Role: model.RoleAdmin}
	none, err := svc.ListWarehouses(empty)
	if err != nil {
		t.Fatalf("ListWarehouses empty scope: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("admin with no assignments should see nothing, got %d", len(none))
	}
}

func TestDeleteWarehouseWithStockRefused(t *testing.T) {
	svc, db := newWarehouseService(t)

	warehouse := testutil.SeedWarehouse(t, db, "Stocked")
	section := testutil.SeedSection(t, db, warehouse, "A1")

	product := &model.Product{Name: "Water", SKU: "WTR-1", Category: "beverage", StorageCondition: "ambient"}
	supplier := &model.Supplier{Name: "Acme", ContactPerson: "Jane", Phone: "555", Email: "a@example.com", Address: "x"}
	for _, rec := range []interface{}{product, supplier} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed %T: %v", rec, err)
		}
	}
	subProduct := &model.SubProduct{Name: "Water 1l", UnitSize: "1l", ProductID: product.ID}
	if err := db.Create(subProduct).Error; err != nil {
		t.Fatalf("seed sub-product: %v", err)
	}
	item := &model.Item{
		SubProductID:       subProduct.ID,
		SupplierID:         supplier.ID,
		WarehouseSectionID: section.ID,
		Quantity:           3,
		ExpirationDate:     time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	if err := svc.DeleteWarehouse(warehouse.ID); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected conflict deleting stocked warehouse, got %v", err)
	}
	if err := svc.DeleteSection(section.ID); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected conflict deleting stocked section, got %v", err)
	}

	if err := db.Delete(item).Error; err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if err := svc.DeleteSection(section.ID); err != nil {
		t.Fatalf("DeleteSection after clearing stock: %v", err)
	}
	if err := svc.DeleteWarehouse(warehouse.ID); err != nil {
		t.Fatalf("DeleteWarehouse after clearing stock: %v", err)
	}
}

func TestSectionCreateRequiresWarehouse(t *testing.T) {
	svc, db := newWarehouseService(t)

	err := svc.CreateSection(&model.WarehouseSection{Name: "Orphan", SectionType: "dry"})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error for missing warehouse, got %v", err)
	}

	warehouse := testutil.SeedWarehouse(t, db, "Parent")
	section := &model.WarehouseSection{Name: "A1", WarehouseID: warehouse.ID, SectionType: "dry"}
	if err := svc.CreateSection(section); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	reloaded, err := svc.GetWarehouse(warehouse.ID)
	if err != nil {
		t.Fatalf("GetWarehouse: %v", err)
	}
	if reloaded.NumberOfSections != 1 {
		t.Errorf("expected section counter 1, got %d", reloaded.NumberOfSections)
	}
}
