package repository

import (
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentFilter narrows shipment listings. Nil/empty fields are ignored.
type ShipmentFilter struct {
	WarehouseID            *uuid.UUID
	DestinationWarehouseID *uuid.UUID
	CarrierID              *uuid.UUID
	SupplierID             *uuid.UUID
	Status                 model.ShipmentStatus
	Priority               model.ShipmentPriority
	ShipmentType           model.ShipmentType
	StartDate              *time.Time
	EndDate                *time.Time
	// ScopeWarehouseIDs restricts to shipments touching (as origin or
	// destination) any of the listed warehouses. Nil means unscoped; an
	// empty slice matches nothing.
	ScopeWarehouseIDs []uuid.UUID
	Page              int
	Limit             int
}

// StatusStat is one row of a status aggregation.
type StatusStat struct {
	Status     model.ShipmentStatus `json:"status"`
	Count      int64                `json:"count"`
	TotalItems int64                `json:"total_items"`
}

// TypeStat is one row of a type aggregation.
type TypeStat struct {
	ShipmentType model.ShipmentType `json:"shipment_type"`
	Count        int64              `json:"count"`
	TotalItems   int64              `json:"total_items"`
}

// CarrierStat is one row of per-carrier delivery performance.
type CarrierStat struct {
	Carrier        string  `json:"carrier"`
	TotalShipments int64   `json:"total_shipments"`
	Delivered      int64   `json:"delivered"`
	InTransit      int64   `json:"in_transit"`
	DeliveryRate   float64 `json:"delivery_rate"`
}

type ShipmentRepository interface {
	Create(tx *gorm.DB, shipment *model.Shipment) error
	FindAll(filter ShipmentFilter) ([]model.Shipment, int64, error)
	FindByID(id uuid.UUID) (*model.Shipment, error)
	Update(shipment *model.Shipment) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	FindRecent(scopeWarehouseIDs []uuid.UUID, limit int) ([]model.Shipment, error)
	Count(scopeWarehouseIDs []uuid.UUID) (int64, error)
	StatusDistribution(scopeWarehouseIDs []uuid.UUID) ([]StatusStat, error)
	TypeDistribution(scopeWarehouseIDs []uuid.UUID) ([]TypeStat, error)
	CarrierPerformance(scopeWarehouseIDs []uuid.UUID) ([]CarrierStat, error)
	StatusCountsForWarehouse(warehouseID uuid.UUID) ([]StatusStat, error)
}

type shipmentRepo struct {
	db *gorm.DB
}

func NewShipmentRepo(db *gorm.DB) ShipmentRepository {
	return &shipmentRepo{db}
}

var shipmentPreloads = []string{
	"Items.Item.SubProduct",
	"Items.Item.Supplier",
	"Items.Item.WarehouseSection",
	"OriginWarehouse",
	"DestinationWarehouse",
	"Carrier",
	"Employee",
	"Supplier",
}

func (r *shipmentRepo) preloaded() *gorm.DB {
	query := r.db
	for _, p := range shipmentPreloads {
		query = query.Preload(p)
	}
	return query
}

// Create inserts the shipment and its manifest rows on the given tx so the
// display-id assignment and line items commit or roll back together.
func (r *shipmentRepo) Create(tx *gorm.DB, shipment *model.Shipment) error {
	return tx.Create(shipment).Error
}

// scopeShipments limits the query to shipments touching the listed
// warehouses. A nil slice means unscoped; an empty slice matches nothing,
// so an admin with no assignments never sees global data.
func scopeShipments(query *gorm.DB, warehouseIDs []uuid.UUID) *gorm.DB {
	if warehouseIDs == nil {
		return query
	}
	if len(warehouseIDs) == 0 {
		return query.Where("1 = 0")
	}
	return query.Where(
		"origin_warehouse_id IN ? OR destination_warehouse_id IN ?",
		warehouseIDs, warehouseIDs,
	)
}

func (r *shipmentRepo) FindAll(filter ShipmentFilter) ([]model.Shipment, int64, error) {
	query := r.db.Model(&model.Shipment{})
	query = scopeShipments(query, filter.ScopeWarehouseIDs)

	if filter.WarehouseID != nil {
		query = query.Where("origin_warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.DestinationWarehouseID != nil {
		query = query.Where("destination_warehouse_id = ?", *filter.DestinationWarehouseID)
	}
	if filter.CarrierID != nil {
		query = query.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ShipmentType != "" {
		query = query.Where("shipment_type = ?", filter.ShipmentType)
	}
	if filter.StartDate != nil {
		query = query.Where("shipment_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("shipment_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var shipments []model.Shipment
	for _, p := range shipmentPreloads {
		query = query.Preload(p)
	}
	err := query.Order("shipment_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&shipments).Error
	return shipments, total, err
}

func (r *shipmentRepo) FindByID(id uuid.UUID) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.preloaded().First(&shipment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepo) Update(shipment *model.Shipment) error {
	return r.db.Save(shipment).Error
}

func (r *shipmentRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	return r.db.Model(&model.Shipment{}).Where("id = ?", id).Updates(fields).Error
}

func (r *shipmentRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", id).Delete(&model.ShipmentItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Shipment{}, "id = ?", id).Error
	})
}

func (r *shipmentRepo) FindRecent(scopeWarehouseIDs []uuid.UUID, limit int) ([]model.Shipment, error) {
	query := scopeShipments(r.db, scopeWarehouseIDs).
		Preload("OriginWarehouse").
		Preload("DestinationWarehouse").
		Preload("Carrier")

	var shipments []model.Shipment
	err := query.Order("created_at DESC").Limit(limit).Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepo) Count(scopeWarehouseIDs []uuid.UUID) (int64, error) {
	var count int64
	err := scopeShipments(r.db.Model(&model.Shipment{}), scopeWarehouseIDs).Count(&count).Error
	return count, err
}

func (r *shipmentRepo) StatusDistribution(scopeWarehouseIDs []uuid.UUID) ([]StatusStat, error) {
	var stats []StatusStat
	query := scopeShipments(r.db.Model(&model.Shipment{}), scopeWarehouseIDs)
	err := query.
		Select(`shipments.status AS status,
			COUNT(DISTINCT shipments.id) AS count,
			COUNT(shipment_items.id) AS total_items`).
		Joins("LEFT JOIN shipment_items ON shipment_items.shipment_id = shipments.id").
		Group("shipments.status").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

func (r *shipmentRepo) TypeDistribution(scopeWarehouseIDs []uuid.UUID) ([]TypeStat, error) {
	var stats []TypeStat
	query := scopeShipments(r.db.Model(&model.Shipment{}), scopeWarehouseIDs)
	err := query.
		Select(`shipments.shipment_type AS shipment_type,
			COUNT(DISTINCT shipments.id) AS count,
			COUNT(shipment_items.id) AS total_items`).
		Joins("LEFT JOIN shipment_items ON shipment_items.shipment_id = shipments.id").
		Group("shipments.shipment_type").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

// CarrierPerformance computes per-carrier delivery ratios. The denominator is
// floored at 1 to guard the division for carriers with no shipments yet.
func (r *shipmentRepo) CarrierPerformance(scopeWarehouseIDs []uuid.UUID) ([]CarrierStat, error) {
	type row struct {
		Carrier        string
		TotalShipments int64
		Delivered      int64
		InTransit      int64
	}
	var rows []row
	query := scopeShipments(r.db.Model(&model.Shipment{}), scopeWarehouseIDs)
	err := query.
		Select(`carriers.name AS carrier,
			COUNT(*) AS total_shipments,
			SUM(CASE WHEN shipments.status = 'delivered' THEN 1 ELSE 0 END) AS delivered,
			SUM(CASE WHEN shipments.status = 'in_transit' THEN 1 ELSE 0 END) AS in_transit`).
		Joins("JOIN carriers ON carriers.id = shipments.carrier_id").
		Group("carriers.name").
		Order("total_shipments DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]CarrierStat, len(rows))
	for i, c := range rows {
		denominator := c.TotalShipments
		if denominator < 1 {
			denominator = 1
		}
		stats[i] = CarrierStat{
			Carrier:        c.Carrier,
			TotalShipments: c.TotalShipments,
			Delivered:      c.Delivered,
			InTransit:      c.InTransit,
			DeliveryRate:   float64(c.Delivered) / float64(denominator) * 100,
		}
	}
	return stats, nil
}

func (r *shipmentRepo) StatusCountsForWarehouse(warehouseID uuid.UUID) ([]StatusStat, error) {
	var stats []StatusStat
	err := r.db.Model(&model.Shipment{}).
		Select("status AS status, COUNT(*) AS count").
		Where("origin_warehouse_id = ? OR destination_warehouse_id = ?", warehouseID, warehouseID).
		Group("status").
		Scan(&stats).Error
	return stats, err
}
