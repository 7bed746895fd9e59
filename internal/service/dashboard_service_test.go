package service_test

import (
	"testing"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/internal/testutil"

	"gorm.io/gorm"
)

func newDashboardService(t *testing.T) (service.DashboardService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := service.NewDashboardService(
		db,
		repository.NewShipmentRepo(db),
		repository.NewItemRepo(db),
		repository.NewSectionRepo(db),
		repository.NewWarehouseRepo(db),
	)
	return svc, db
}

// seedDashboardData builds two warehouses with stock and three shipments:
// one delivered and one pending touching the first warehouse, one pending
// touching the second.
func seedDashboardData(t *testing.T, db *gorm.DB) (*model.Warehouse, *model.Warehouse) {
	t.Helper()

	first := testutil.SeedWarehouse(t, db, "First")
	second := testutil.SeedWarehouse(t, db, "Second")
	firstSection := testutil.SeedSection(t, db, first, "A1")
	secondSection := testutil.SeedSection(t, db, second, "B1")

	product := &model.Product{Name: "Water", SKU: "WTR-1", Category: "beverage", StorageCondition: "ambient"}
	supplier := &model.Supplier{Name: "Acme", ContactPerson: "Jane", Phone: "555", Email: "a@example.com", Address: "x"}
	carrier := &model.Carrier{Name: "Speedy", Phone: "555", Email: "c@example.com", ServiceType: "road"}
	employee := &model.Employee{FirstName: "Eve", LastName: "Ops", Role: "picker", Email: "e@example.com", Phone: "555", WarehouseID: &first.ID}
	for _, rec := range []interface{}{product, supplier, carrier, employee} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed %T: %v", rec, err)
		}
	}
	subProduct := &model.SubProduct{Name: "Water 1l", UnitSize: "1l", ProductID: product.ID}
	if err := db.Create(subProduct).Error; err != nil {
		t.Fatalf("seed sub-product: %v", err)
	}

	// One batch expiring inside the 30 day window, one far out.
	soon := &model.Item{
		SubProductID:       subProduct.ID,
		SupplierID:         supplier.ID,
		WarehouseSectionID: firstSection.ID,
		Quantity:           10,
		ExpirationDate:     time.Now().Add(5 * 24 * time.Hour),
	}
	later := &model.Item{
		SubProductID:       subProduct.ID,
		SupplierID:         supplier.ID,
		WarehouseSectionID: secondSection.ID,
		Quantity:           20,
		ExpirationDate:     time.Now().Add(90 * 24 * time.Hour),
	}
	for _, item := range []*model.Item{soon, later} {
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("seed item: %v", err)
		}
	}

	mkShipment := func(origin *model.Warehouse, status model.ShipmentStatus, item *model.Item) {
		shipment := &model.Shipment{
			ShipmentType:       model.WarehouseToCustomer,
			OriginWarehouseID:  &origin.ID,
			DestinationAddress: "Somewhere 1",
			CarrierID:          carrier.ID,
			EmployeeID:         employee.ID,
			Status:             status,
			Items: []model.ShipmentItem{
				{ItemID: item.ID, Quantity: 1},
			},
		}
		if err := db.Create(shipment).Error; err != nil {
			t.Fatalf("seed shipment: %v", err)
		}
	}
	mkShipment(first, model.StatusDelivered, soon)
	mkShipment(first, model.StatusPending, soon)
	mkShipment(second, model.StatusPending, later)

	return first, second
}

func TestDashboardOverview(t *testing.T) {
	svc, db := newDashboardService(t)
	first, _ := seedDashboardData(t, db)

	overview, err := svc.Overview(nil)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Counts["warehouses"] != 2 {
		t.Errorf("expected 2 warehouses, got %d", overview.Counts["warehouses"])
	}
	if overview.Counts["items"] != 2 {
		t.Errorf("expected 2 items, got %d", overview.Counts["items"])
	}
	if overview.Counts["shipments"] != 3 {
		t.Errorf("expected 3 shipments, got %d", overview.Counts["shipments"])
	}
	if len(overview.RecentShipments) != 3 {
		t.Errorf("expected 3 recent shipments, got %d", len(overview.RecentShipments))
	}
	if len(overview.ExpiringItems) != 1 {
		t.Errorf("expected 1 expiring item, got %d", len(overview.ExpiringItems))
	}
	if overview.Alerts["pending_shipments"] != 2 {
		t.Errorf("expected 2 pending shipments, got %d", overview.Alerts["pending_shipments"])
	}

	// A scoped admin only sees their warehouse's slice.
	scoped := &model.Admin{Role: model.RoleAdmin, AssignedWarehouses: []model.Warehouse{*first}}
	mine, err := svc.Overview(scoped)
	if err != nil {
		t.Fatalf("Overview scoped: %v", err)
	}
	if mine.Counts["warehouses"] != 1 {
		t.Errorf("scoped: expected 1 warehouse, got %d", mine.Counts["warehouses"])
	}
	if mine.Counts["items"] != 1 {
		t.Errorf("scoped: expected 1 item, got %d", mine.Counts["items"])
	}
	if mine.Counts["shipments"] != 2 {
		t.Errorf("scoped: expected 2 shipments, got %d", mine.Counts["shipments"])
	}
}

func TestDashboardUnassignedAdminSeesNothing(t *testing.T) {
	svc, db := newDashboardService(t)
	seedDashboardData(t, db)

	unassigned := &model.Admin{Role: model.RoleAdmin}

	overview, err := svc.Overview(unassigned)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Counts["warehouses"] != 0 {
		t.Errorf("expected 0 warehouses, got %d", overview.Counts["warehouses"])
	}
	if overview.Counts["items"] != 0 {
		t.Errorf("expected 0 items, got %d", overview.Counts["items"])
	}
	if overview.Counts["shipments"] != 0 {
		t.Errorf("expected 0 shipments, got %d", overview.Counts["shipments"])
	}
	if len(overview.RecentShipments) != 0 {
		t.Errorf("expected no recent shipments, got %d", len(overview.RecentShipments))
	}
	if len(overview.ShipmentsByStatus) != 0 {
		t.Errorf("expected empty status distribution, got %+v", overview.ShipmentsByStatus)
	}
	if len(overview.ExpiringItems) != 0 {
		t.Errorf("expected no expiring items, got %d", len(overview.ExpiringItems))
	}

	analytics, err := svc.Shipments(unassigned)
	if err != nil {
		t.Fatalf("Shipments: %v", err)
	}
	if len(analytics.ByStatus) != 0 || len(analytics.ByType) != 0 || len(analytics.CarrierPerformance) != 0 {
		t.Errorf("expected empty shipment analytics, got %+v", analytics)
	}
}

func TestDashboardWarehouses(t *testing.T) {
	svc, db := newDashboardService(t)
	first, _ := seedDashboardData(t, db)

	analytics, err := svc.Warehouses(nil)
	if err != nil {
		t.Fatalf("Warehouses: %v", err)
	}
	if len(analytics) != 2 {
		t.Fatalf("expected 2 warehouse rows, got %d", len(analytics))
	}

	var firstRow *service.WarehouseAnalytics
	for i := range analytics {
		if analytics[i].Warehouse.ID == first.ID {
			firstRow = &analytics[i]
		}
	}
	if firstRow == nil {
		t.Fatal("first warehouse missing from analytics")
	}
	if firstRow.SectionCount != 1 || firstRow.ItemCount != 1 {
		t.Errorf("first warehouse counts wrong: %+v", firstRow)
	}

	var total int64
	for _, stat := range firstRow.ShipmentStats {
		total += stat.Count
	}
	if total != 2 {
		t.Errorf("expected 2 shipments for first warehouse, got %d", total)
	}
}

func TestDashboardInventory(t *testing.T) {
	svc, db := newDashboardService(t)
	seedDashboardData(t, db)

	inventory, err := svc.Inventory(nil)
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	if inventory.TotalItems != 2 {
		t.Errorf("expected 2 items total, got %d", inventory.TotalItems)
	}
	if len(inventory.ByCategory) != 1 || inventory.ByCategory[0].Category != "beverage" {
		t.Fatalf("unexpected category breakdown: %+v", inventory.ByCategory)
	}
	if inventory.ByCategory[0].ItemCount != 2 || inventory.ByCategory[0].TotalQty != 30 {
		t.Errorf("category aggregates wrong: %+v", inventory.ByCategory[0])
	}
	if len(inventory.ExpiringItems) != 1 {
		t.Fatalf("expected 1 expiring item, got %d", len(inventory.ExpiringItems))
	}
	if days := inventory.ExpiringItems[0].DaysUntilExpiry; days < 4 || days > 5 {
		t.Errorf("unexpected days until expiry: %d", days)
	}
	// Expires within 7 days, so it counts as critical.
	if inventory.CriticalCount != 1 {
		t.Errorf("expected 1 critical item, got %d", inventory.CriticalCount)
	}
}

func TestDashboardShipments(t *testing.T) {
	svc, db := newDashboardService(t)
	seedDashboardData(t, db)

	analytics, err := svc.Shipments(nil)
	if err != nil {
		t.Fatalf("Shipments: %v", err)
	}

	byStatus := map[model.ShipmentStatus]int64{}
	for _, stat := range analytics.ByStatus {
		byStatus[stat.Status] = stat.Count
	}
	if byStatus[model.StatusPending] != 2 || byStatus[model.StatusDelivered] != 1 {
		t.Errorf("unexpected status distribution: %+v", analytics.ByStatus)
	}

	if len(analytics.ByType) != 1 || analytics.ByType[0].ShipmentType != model.WarehouseToCustomer {
		t.Errorf("unexpected type distribution: %+v", analytics.ByType)
	}

	if len(analytics.CarrierPerformance) != 1 {
		t.Fatalf("expected 1 carrier row, got %d", len(analytics.CarrierPerformance))
	}
	carrier := analytics.CarrierPerformance[0]
	if carrier.Carrier != "Speedy" || carrier.TotalShipments != 3 || carrier.Delivered != 1 {
		t.Errorf("carrier performance wrong: %+v", carrier)
	}
	if carrier.DeliveryRate < 33 || carrier.DeliveryRate > 34 {
		t.Errorf("unexpected delivery rate: %f", carrier.DeliveryRate)
	}
}

func TestDashboardHealth(t *testing.T) {
	svc, _ := newDashboardService(t)

	report, err := svc.Health()
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if report.Status != "ok" {
		t.Errorf("expected ok status, got %s", report.Status)
	}
	if report.GoVersion == "" || report.Goroutines < 1 {
		t.Errorf("runtime fields not populated: %+v", report)
	}
}
