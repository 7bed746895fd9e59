package repository_test

import (
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/testutil"

	"github.com/google/uuid"
)

func TestSectionCreateAndDeleteAdjustCounter(t *testing.T) {
	db := testutil.NewDB(t)
	warehouseRepo := repository.NewWarehouseRepo(db)
	sectionRepo := repository.NewSectionRepo(db)

	warehouse := testutil.SeedWarehouse(t, db, "Main")
	if warehouse.NumberOfSections != 0 {
		t.Fatalf("expected 0 sections initially, got %d", warehouse.NumberOfSections)
	}

	first := &model.WarehouseSection{Name: "A1", WarehouseID: warehouse.ID, SectionType: "dry"}
	second := &model.WarehouseSection{Name: "A2", WarehouseID: warehouse.ID, SectionType: "cold"}
	for _, section := range []*model.WarehouseSection{first, second} {
		if err := sectionRepo.Create(section); err != nil {
			t.Fatalf("create section %s: %v", section.Name, err)
		}
	}

	reloaded, err := warehouseRepo.FindByID(warehouse.ID)
	if err != nil {
		t.Fatalf("reload warehouse: %v", err)
	}
	if reloaded.NumberOfSections != 2 {
		t.Fatalf("expected counter 2 after creates, got %d", reloaded.NumberOfSections)
	}

	if err := sectionRepo.Delete(first.ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	reloaded, err = warehouseRepo.FindByID(warehouse.ID)
	if err != nil {
		t.Fatalf("reload warehouse: %v", err)
	}
	if reloaded.NumberOfSections != 1 {
		t.Fatalf("expected counter 1 after delete, got %d", reloaded.NumberOfSections)
	}

	sections, err := sectionRepo.FindByWarehouse(warehouse.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 1 || sections[0].Name != "A2" {
		t.Fatalf("unexpected remaining sections: %+v", sections)
	}
}

func TestFindIDsByWarehouses(t *testing.T) {
	db := testutil.NewDB(t)
	sectionRepo := repository.NewSectionRepo(db)

	w1 := testutil.SeedWarehouse(t, db, "One")
	w2 := testutil.SeedWarehouse(t, db, "Two")
	testutil.SeedSection(t, db, w1, "A1")
	testutil.SeedSection(t, db, w1, "A2")
	testutil.SeedSection(t, db, w2, "B1")

	ids, err := sectionRepo.FindIDsByWarehouses([]uuid.UUID{w1.ID})
	if err != nil {
		t.Fatalf("FindIDsByWarehouses: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 section ids for warehouse one, got %d", len(ids))
	}
}
