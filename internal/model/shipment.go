package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentType is the directional flow of a shipment. The type determines
// which reference fields are mandatory.
type ShipmentType string

const (
	SupplierToWarehouse  ShipmentType = "supplier_to_warehouse"
	WarehouseToWarehouse ShipmentType = "warehouse_to_warehouse"
	WarehouseToCustomer  ShipmentType = "warehouse_to_customer"
)

// Valid reports whether t is a known shipment type.
func (t ShipmentType) Valid() bool {
	switch t {
	case SupplierToWarehouse, WarehouseToWarehouse, WarehouseToCustomer:
		return true
	}
	return false
}

// ShipmentStatus is the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "pending"
	StatusInTransit ShipmentStatus = "in_transit"
	StatusDelivered ShipmentStatus = "delivered"
	StatusCancelled ShipmentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the status machine:
// pending -> in_transit -> delivered, with cancelled reachable from any
// non-terminal state. delivered and cancelled are terminal.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInTransit || next == StatusCancelled
	case StatusInTransit:
		return next == StatusDelivered || next == StatusCancelled
	}
	return false
}

// ShipmentPriority orders shipments for handling.
type ShipmentPriority string

const (
	PriorityLow    ShipmentPriority = "low"
	PriorityMedium ShipmentPriority = "medium"
	PriorityHigh   ShipmentPriority = "high"
	PriorityUrgent ShipmentPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p ShipmentPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ShipmentItem is one line of a shipment's manifest.
type ShipmentItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null" json:"item_id" validate:"uuid_required"`
	Item       *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gte=1"`
}

// Shipment moves items between a supplier, warehouses, or a customer.
type Shipment struct {
	BaseModel
	ShipmentID   int64        `gorm:"uniqueIndex" json:"shipment_id"`
	ShipmentType ShipmentType `gorm:"type:varchar(30);not null;default:warehouse_to_customer" json:"shipment_type" validate:"required"`

	Items []ShipmentItem `gorm:"foreignKey:ShipmentID" json:"items" validate:"required,min=1,dive"`

	// Origin details
	OriginWarehouseID *uuid.UUID `gorm:"type:uuid;index" json:"origin_warehouse_id,omitempty"`
	OriginWarehouse   *Warehouse `gorm:"foreignKey:OriginWarehouseID" json:"origin_warehouse,omitempty"`
	SupplierID        *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier          *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	// Destination details
	DestinationWarehouseID *uuid.UUID `gorm:"type:uuid;index" json:"destination_warehouse_id,omitempty"`
	DestinationWarehouse   *Warehouse `gorm:"foreignKey:DestinationWarehouseID" json:"destination_warehouse,omitempty"`
	DestinationAddress     string     `gorm:"type:varchar(255)" json:"destination_address,omitempty"`
	DestinationContact     string     `gorm:"type:varchar(255)" json:"destination_contact,omitempty"`

	// Common fields
	CarrierID  uuid.UUID `gorm:"type:uuid;not null;index" json:"carrier_id" validate:"uuid_required"`
	Carrier    *Carrier  `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null" json:"employee_id" validate:"uuid_required"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	Status                ShipmentStatus   `gorm:"type:varchar(20);default:pending;index" json:"status"`
	ShipmentDate          time.Time        `gorm:"index" json:"shipment_date"`
	ReceivedDate          *time.Time       `json:"received_date,omitempty"`
	EstimatedDeliveryDate *time.Time       `json:"estimated_delivery_date,omitempty"`
	ActualDeliveryDate    *time.Time       `json:"actual_delivery_date,omitempty"`
	TrackingNumber        *string          `gorm:"type:varchar(100);uniqueIndex" json:"tracking_number,omitempty"`
	TotalWeight           float64          `gorm:"default:0" json:"total_weight"`
	TotalVolume           float64          `gorm:"default:0" json:"total_volume"`
	Priority              ShipmentPriority `gorm:"type:varchar(10);default:medium" json:"priority"`
	Notes                 string           `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate assigns the sequential shipment_id and defaults.
func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.ShipmentID == 0 {
		next, err := NextSequence(tx, SeqShipments)
		if err != nil {
			return err
		}
		s.ShipmentID = next
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	if s.Priority == "" {
		s.Priority = PriorityMedium
	}
	if s.ShipmentDate.IsZero() {
		s.ShipmentDate = time.Now()
	}
	return nil
}
