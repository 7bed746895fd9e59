package service

import (
	"runtime"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// expiringWindow is how far ahead the overview and inventory views look for
// items that are about to expire.
const expiringWindow = 30 * 24 * time.Hour

// criticalWindow marks items needing immediate handling.
const criticalWindow = 7 * 24 * time.Hour

type Overview struct {
	Counts            map[string]int64        `json:"counts"`
	RecentShipments   []model.Shipment        `json:"recent_shipments"`
	ExpiringItems     []model.Item            `json:"expiring_items"`
	ShipmentsByStatus []repository.StatusStat `json:"shipments_by_status"`
	Alerts            map[string]int64        `json:"alerts"`
}

type WarehouseAnalytics struct {
	Warehouse     model.Warehouse         `json:"warehouse"`
	SectionCount  int64                   `json:"section_count"`
	ItemCount     int64                   `json:"item_count"`
	ShipmentStats []repository.StatusStat `json:"shipment_stats"`
}

type CategoryStat struct {
	Category  string `json:"category"`
	ItemCount int64  `json:"item_count"`
	TotalQty  int64  `json:"total_quantity"`
}

type ExpiringItem struct {
	Item            model.Item `json:"item"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
}

type InventoryAnalytics struct {
	TotalItems    int64          `json:"total_items"`
	ByCategory    []CategoryStat `json:"by_category"`
	ExpiringItems []ExpiringItem `json:"expiring_items"`
	CriticalCount int64          `json:"critical_count"`
}

type ShipmentAnalytics struct {
	ByStatus           []repository.StatusStat  `json:"by_status"`
	ByType             []repository.TypeStat    `json:"by_type"`
	CarrierPerformance []repository.CarrierStat `json:"carrier_performance"`
}

type HealthReport struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	GoVersion     string  `json:"go_version"`
	Goroutines    int     `json:"goroutines"`
	AllocMB       float64 `json:"alloc_mb"`
	DBOpenConns   int     `json:"db_open_conns"`
	DBInUse       int     `json:"db_in_use"`
	DBIdle        int     `json:"db_idle"`
}

type DashboardService interface {
	Overview(current *model.Admin) (*Overview, error)
	Warehouses(current *model.Admin) ([]WarehouseAnalytics, error)
	Inventory(current *model.Admin) (*InventoryAnalytics, error)
	Shipments(current *model.Admin) (*ShipmentAnalytics, error)
	Health() (*HealthReport, error)
}

type dashboardService struct {
	db            *gorm.DB
	shipmentRepo  repository.ShipmentRepository
	itemRepo      repository.ItemRepository
	sectionRepo   repository.SectionRepository
	warehouseRepo repository.WarehouseRepository
	startedAt     time.Time
}

func NewDashboardService(
	db *gorm.DB,
	shipmentRepo repository.ShipmentRepository,
	itemRepo repository.ItemRepository,
	sectionRepo repository.SectionRepository,
	warehouseRepo repository.WarehouseRepository,
) DashboardService {
	return &dashboardService{
		db:            db,
		shipmentRepo:  shipmentRepo,
		itemRepo:      itemRepo,
		sectionRepo:   sectionRepo,
		warehouseRepo: warehouseRepo,
		startedAt:     time.Now(),
	}
}

// scopedWarehouses resolves the warehouses visible to the admin.
func (s *dashboardService) scopedWarehouses(current *model.Admin) ([]model.Warehouse, error) {
	if current == nil || current.Role == model.RoleSuperAdmin {
		return s.warehouseRepo.FindAll()
	}
	return s.warehouseRepo.FindByIDs(current.AssignedWarehouseIDs())
}

// scopedSectionIDs returns the section ids visible to the admin, or nil when
// unscoped.
func (s *dashboardService) scopedSectionIDs(current *model.Admin) ([]uuid.UUID, error) {
	ids := scopeFor(current)
	if ids == nil {
		return nil, nil
	}
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}
	sectionIDs, err := s.sectionRepo.FindIDsByWarehouses(ids)
	if err != nil {
		return nil, err
	}
	if sectionIDs == nil {
		sectionIDs = []uuid.UUID{}
	}
	return sectionIDs, nil
}

func (s *dashboardService) Overview(current *model.Admin) (*Overview, error) {
	scope := scopeFor(current)

	counts := map[string]int64{}
	warehouses, err := s.scopedWarehouses(current)
	if err != nil {
		return nil, err
	}
	counts["warehouses"] = int64(len(warehouses))

	sectionIDs, err := s.scopedSectionIDs(current)
	if err != nil {
		return nil, err
	}

	var itemCount int64
	if sectionIDs == nil {
		if err := s.db.Model(&model.Item{}).Count(&itemCount).Error; err != nil {
			return nil, err
		}
	} else {
		itemCount, err = s.itemRepo.CountInSections(sectionIDs)
		if err != nil {
			return nil, err
		}
	}
	counts["items"] = itemCount

	for name, m := range map[string]interface{}{
		"products":  &model.Product{},
		"suppliers": &model.Supplier{},
		"carriers":  &model.Carrier{},
		"employees": &model.Employee{},
	} {
		var c int64
		if err := s.db.Model(m).Count(&c).Error; err != nil {
			return nil, err
		}
		counts[name] = c
	}

	shipmentCount, err := s.shipmentRepo.Count(scope)
	if err != nil {
		return nil, err
	}
	counts["shipments"] = shipmentCount

	recent, err := s.shipmentRepo.FindRecent(scope, 5)
	if err != nil {
		return nil, err
	}

	expiring, err := s.itemRepo.FindExpiringBefore(time.Now().Add(expiringWindow), sectionIDs, 10)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.shipmentRepo.StatusDistribution(scope)
	if err != nil {
		return nil, err
	}

	var pending int64
	for _, stat := range byStatus {
		if stat.Status == model.StatusPending {
			pending = stat.Count
		}
	}
	alerts := map[string]int64{
		"expiring_items":    int64(len(expiring)),
		"pending_shipments": pending,
	}

	return &Overview{
		Counts:            counts,
		RecentShipments:   recent,
		ExpiringItems:     expiring,
		ShipmentsByStatus: byStatus,
		Alerts:            alerts,
	}, nil
}

func (s *dashboardService) Warehouses(current *model.Admin) ([]WarehouseAnalytics, error) {
	warehouses, err := s.scopedWarehouses(current)
	if err != nil {
		return nil, err
	}

	analytics := make([]WarehouseAnalytics, 0, len(warehouses))
	for _, warehouse := range warehouses {
		sectionIDs, err := s.sectionRepo.FindIDsByWarehouses([]uuid.UUID{warehouse.ID})
		if err != nil {
			return nil, err
		}

		var itemCount int64
		if len(sectionIDs) > 0 {
			itemCount, err = s.itemRepo.CountInSections(sectionIDs)
			if err != nil {
				return nil, err
			}
		}

		shipmentStats, err := s.shipmentRepo.StatusCountsForWarehouse(warehouse.ID)
		if err != nil {
			return nil, err
		}

		analytics = append(analytics, WarehouseAnalytics{
			Warehouse:     warehouse,
			SectionCount:  int64(len(sectionIDs)),
			ItemCount:     itemCount,
			ShipmentStats: shipmentStats,
		})
	}
	return analytics, nil
}

func (s *dashboardService) Inventory(current *model.Admin) (*InventoryAnalytics, error) {
	sectionIDs, err := s.scopedSectionIDs(current)
	if err != nil {
		return nil, err
	}

	itemQuery := s.db.Model(&model.Item{})
	if sectionIDs != nil {
		itemQuery = itemQuery.Where("items.warehouse_section_id IN ?", sectionIDs)
	}

	var total int64
	if err := itemQuery.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	// Category breakdown walks item -> sub_product -> product.
	var byCategory []CategoryStat
	err = itemQuery.Session(&gorm.Session{}).
		Select(`products.category AS category,
			COUNT(items.id) AS item_count,
			SUM(items.quantity) AS total_qty`).
		Joins("JOIN sub_products ON sub_products.id = items.sub_product_id").
		Joins("JOIN products ON products.id = sub_products.product_id").
		Group("products.category").
		Order("item_count DESC").
		Scan(&byCategory).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	raw, err := s.itemRepo.FindExpiringBefore(now.Add(expiringWindow), sectionIDs, 50)
	if err != nil {
		return nil, err
	}

	expiring := make([]ExpiringItem, len(raw))
	var critical int64
	for i, item := range raw {
		days := int(time.Until(item.ExpirationDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		expiring[i] = ExpiringItem{Item: item, DaysUntilExpiry: days}
		if item.ExpirationDate.Before(now.Add(criticalWindow)) {
			critical++
		}
	}

	return &InventoryAnalytics{
		TotalItems:    total,
		ByCategory:    byCategory,
		ExpiringItems: expiring,
		CriticalCount: critical,
	}, nil
}

func (s *dashboardService) Shipments(current *model.Admin) (*ShipmentAnalytics, error) {
	scope := scopeFor(current)

	byStatus, err := s.shipmentRepo.StatusDistribution(scope)
	if err != nil {
		return nil, err
	}
	byType, err := s.shipmentRepo.TypeDistribution(scope)
	if err != nil {
		return nil, err
	}
	carriers, err := s.shipmentRepo.CarrierPerformance(scope)
	if err != nil {
		return nil, err
	}

	return &ShipmentAnalytics{
		ByStatus:           byStatus,
		ByType:             byType,
		CarrierPerformance: carriers,
	}, nil
}

func (s *dashboardService) Health() (*HealthReport, error) {
	report := &HealthReport{
		Status:        "ok",
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	report.AllocMB = float64(mem.Alloc) / (1024 * 1024)

	sqlDB, err := s.db.DB()
	if err != nil {
		report.Status = "degraded"
		return report, nil
	}
	if err := sqlDB.Ping(); err != nil {
		report.Status = "degraded"
		return report, nil
	}
	stats := sqlDB.Stats()
	report.DBOpenConns = stats.OpenConnections
	report.DBInUse = stats.InUse
	report.DBIdle = stats.Idle

	return report, nil
}
