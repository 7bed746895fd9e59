package service

import (
	"errors"
	"fmt"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrShipmentNotFound   = errors.New("shipment not found")
	ErrShipmentNotPending = errors.New("only pending shipments can be deleted")
	ErrShipmentTerminal   = errors.New("shipment is in a terminal state")
	ErrForbiddenShipment  = errors.New("shipment is outside your assigned warehouses")
)

type ShipmentLine struct {
	ItemID   uuid.UUID `json:"item_id" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"required,gte=1"`
}

type CreateShipmentRequest struct {
	ShipmentType           model.ShipmentType     `json:"shipment_type" validate:"required"`
	Items                  []ShipmentLine         `json:"items" validate:"required,min=1,dive"`
	OriginWarehouseID      *uuid.UUID             `json:"origin_warehouse_id"`
	SupplierID             *uuid.UUID             `json:"supplier_id"`
	DestinationWarehouseID *uuid.UUID             `json:"destination_warehouse_id"`
	DestinationAddress     string                 `json:"destination_address"`
	DestinationContact     string                 `json:"destination_contact"`
	CarrierID              uuid.UUID              `json:"carrier_id" validate:"uuid_required"`
	EmployeeID             uuid.UUID              `json:"employee_id" validate:"uuid_required"`
	ShipmentDate           *time.Time             `json:"shipment_date"`
	EstimatedDeliveryDate  *time.Time             `json:"estimated_delivery_date"`
	TrackingNumber         *string                `json:"tracking_number"`
	TotalWeight            float64                `json:"total_weight"`
	TotalVolume            float64                `json:"total_volume"`
	Priority               model.ShipmentPriority `json:"priority"`
	Notes                  string                 `json:"notes"`
}

type UpdateShipmentRequest struct {
	EstimatedDeliveryDate *time.Time              `json:"estimated_delivery_date"`
	TrackingNumber        *string                 `json:"tracking_number"`
	Priority              *model.ShipmentPriority `json:"priority"`
	Notes                 *string                 `json:"notes"`
	TotalWeight           *float64                `json:"total_weight"`
	TotalVolume           *float64                `json:"total_volume"`
}

type ShipmentService interface {
	Create(req *CreateShipmentRequest, current *model.Admin) (*model.Shipment, error)
	List(filter repository.ShipmentFilter, current *model.Admin) ([]model.Shipment, Pagination, error)
	Get(id uuid.UUID, current *model.Admin) (*model.Shipment, error)
	Update(id uuid.UUID, req *UpdateShipmentRequest, current *model.Admin) (*model.Shipment, error)
	UpdateStatus(id uuid.UUID, status model.ShipmentStatus, current *model.Admin) (*model.Shipment, error)
	Delete(id uuid.UUID, current *model.Admin) error
	Stats(current *model.Admin) ([]repository.StatusStat, error)
}

type shipmentService struct {
	db            *gorm.DB
	shipmentRepo  repository.ShipmentRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	carrierRepo   repository.CarrierRepository
	employeeRepo  repository.EmployeeRepository
	hub           *ws.Hub
}

func NewShipmentService(
	db *gorm.DB,
	shipmentRepo repository.ShipmentRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	carrierRepo repository.CarrierRepository,
	employeeRepo repository.EmployeeRepository,
	hub *ws.Hub,
) ShipmentService {
	return &shipmentService{
		db:            db,
		shipmentRepo:  shipmentRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		carrierRepo:   carrierRepo,
		employeeRepo:  employeeRepo,
		hub:           hub,
	}
}

// scopeFor returns the warehouse ids a non-super admin is limited to.
// Nil means unscoped; an empty slice means no visibility at all.
func scopeFor(current *model.Admin) []uuid.UUID {
	if current == nil || current.Role == model.RoleSuperAdmin {
		return nil
	}
	return current.AssignedWarehouseIDs()
}

// canSee reports whether the admin may view a shipment, based on the
// warehouses it touches. For supplier deliveries the origin warehouse is the
// receiving site, so it grants visibility like any other endpoint.
func canSee(current *model.Admin, s *model.Shipment) bool {
	if current == nil || current.Role == model.RoleSuperAdmin {
		return true
	}
	if s.OriginWarehouseID != nil && current.CanAccessWarehouse(*s.OriginWarehouseID) {
		return true
	}
	if s.DestinationWarehouseID != nil && current.CanAccessWarehouse(*s.DestinationWarehouseID) {
		return true
	}
	return false
}

func (s *shipmentService) Create(req *CreateShipmentRequest, current *model.Admin) (*model.Shipment, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if !req.ShipmentType.Valid() {
		return nil, validationErrf("invalid shipment_type '%s'", req.ShipmentType)
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return nil, validationErrf("invalid priority '%s'", req.Priority)
	}

	if err := s.validateEndpoints(req); err != nil {
		return nil, err
	}

	if _, err := s.carrierRepo.FindByID(req.CarrierID); err != nil {
		return nil, validationErrf("carrier %s does not exist", req.CarrierID)
	}
	if _, err := s.employeeRepo.FindByID(req.EmployeeID); err != nil {
		return nil, validationErrf("employee %s does not exist", req.EmployeeID)
	}

	lines, err := s.validateManifest(req)
	if err != nil {
		return nil, err
	}

	shipment := &model.Shipment{
		ShipmentType:           req.ShipmentType,
		Items:                  lines,
		OriginWarehouseID:      req.OriginWarehouseID,
		SupplierID:             req.SupplierID,
		DestinationWarehouseID: req.DestinationWarehouseID,
		DestinationAddress:     req.DestinationAddress,
		DestinationContact:     req.DestinationContact,
		CarrierID:              req.CarrierID,
		EmployeeID:             req.EmployeeID,
		EstimatedDeliveryDate:  req.EstimatedDeliveryDate,
		TrackingNumber:         req.TrackingNumber,
		TotalWeight:            req.TotalWeight,
		TotalVolume:            req.TotalVolume,
		Priority:               req.Priority,
		Notes:                  req.Notes,
	}
	if req.ShipmentDate != nil {
		shipment.ShipmentDate = *req.ShipmentDate
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.shipmentRepo.Create(tx, shipment)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.shipmentRepo.FindByID(shipment.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"shipment_id": created.ShipmentID,
		"type":        created.ShipmentType,
	}).Info("Shipment created")
	s.hub.BroadcastEvent("shipment_created", map[string]interface{}{"shipment": created})

	return created, nil
}

// validateEndpoints enforces the per-type origin/destination requirements.
func (s *shipmentService) validateEndpoints(req *CreateShipmentRequest) error {
	switch req.ShipmentType {
	case model.SupplierToWarehouse:
		if req.SupplierID == nil || *req.SupplierID == uuid.Nil {
			return validationErrf("supplier_id is required for supplier_to_warehouse shipments")
		}
		// The origin warehouse is the receiving site for supplier deliveries.
		if req.OriginWarehouseID == nil || *req.OriginWarehouseID == uuid.Nil {
			return validationErrf("origin_warehouse_id is required for supplier_to_warehouse shipments")
		}
		if _, err := s.supplierRepo.FindByID(*req.SupplierID); err != nil {
			return validationErrf("supplier %s does not exist", *req.SupplierID)
		}

	case model.WarehouseToWarehouse:
		if req.OriginWarehouseID == nil || *req.OriginWarehouseID == uuid.Nil {
			return validationErrf("origin_warehouse_id is required for warehouse_to_warehouse shipments")
		}
		if req.DestinationWarehouseID == nil || *req.DestinationWarehouseID == uuid.Nil {
			return validationErrf("destination_warehouse_id is required for warehouse_to_warehouse shipments")
		}
		if *req.OriginWarehouseID == *req.DestinationWarehouseID {
			return validationErrf("origin and destination warehouses must differ")
		}

	case model.WarehouseToCustomer:
		if req.OriginWarehouseID == nil || *req.OriginWarehouseID == uuid.Nil {
			return validationErrf("origin_warehouse_id is required for warehouse_to_customer shipments")
		}
		if req.DestinationAddress == "" {
			return validationErrf("destination_address is required for warehouse_to_customer shipments")
		}
		if req.DestinationContact == "" {
			return validationErrf("destination_contact is required for warehouse_to_customer shipments")
		}
	}

	if req.OriginWarehouseID != nil && *req.OriginWarehouseID != uuid.Nil {
		if _, err := s.warehouseRepo.FindByID(*req.OriginWarehouseID); err != nil {
			return validationErrf("origin warehouse %s does not exist", *req.OriginWarehouseID)
		}
	}
	if req.DestinationWarehouseID != nil && *req.DestinationWarehouseID != uuid.Nil {
		if _, err := s.warehouseRepo.FindByID(*req.DestinationWarehouseID); err != nil {
			return validationErrf("destination warehouse %s does not exist", *req.DestinationWarehouseID)
		}
	}
	return nil
}

// validateManifest checks every line's item exists and, when the shipment
// leaves a warehouse, that the item sits in that warehouse and covers the
// requested quantity. Supplier deliveries are inbound, so neither check
// applies to them. The error names the offending item so the client can fix
// the manifest.
func (s *shipmentService) validateManifest(req *CreateShipmentRequest) ([]model.ShipmentItem, error) {
	outbound := req.ShipmentType != model.SupplierToWarehouse
	lines := make([]model.ShipmentItem, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := s.itemRepo.FindByID(line.ItemID)
		if err != nil {
			return nil, validationErrf("item %s does not exist", line.ItemID)
		}

		if outbound {
			if req.OriginWarehouseID != nil && *req.OriginWarehouseID != uuid.Nil {
				if item.WarehouseSection == nil || item.WarehouseSection.WarehouseID != *req.OriginWarehouseID {
					return nil, validationErrf("item %s is not stored in the origin warehouse", line.ItemID)
				}
			}
			if line.Quantity > item.Quantity {
				return nil, validationErrf(
					"item %s has only %d units available, requested %d",
					line.ItemID, item.Quantity, line.Quantity,
				)
			}
		}

		lines = append(lines, model.ShipmentItem{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	return lines, nil
}

func (s *shipmentService) List(filter repository.ShipmentFilter, current *model.Admin) ([]model.Shipment, Pagination, error) {
	filter.ScopeWarehouseIDs = scopeFor(current)
	if current != nil && current.Role != model.RoleSuperAdmin && len(filter.ScopeWarehouseIDs) == 0 {
		// A scoped admin with no assignments sees nothing rather than everything.
		return []model.Shipment{}, NewPagination(1, 10, 0), nil
	}

	shipments, total, err := s.shipmentRepo.FindAll(filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	return shipments, NewPagination(page, limit, total), nil
}

func (s *shipmentService) Get(id uuid.UUID, current *model.Admin) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(id)
	if err != nil {
		return nil, ErrShipmentNotFound
	}
	if !canSee(current, shipment) {
		return nil, ErrForbiddenShipment
	}
	return shipment, nil
}

func (s *shipmentService) Update(id uuid.UUID, req *UpdateShipmentRequest, current *model.Admin) (*model.Shipment, error) {
	shipment, err := s.Get(id, current)
	if err != nil {
		return nil, err
	}
	if shipment.Status == model.StatusDelivered || shipment.Status == model.StatusCancelled {
		return nil, ErrShipmentTerminal
	}

	fields := map[string]interface{}{}
	if req.EstimatedDeliveryDate != nil {
		fields["estimated_delivery_date"] = *req.EstimatedDeliveryDate
	}
	if req.TrackingNumber != nil {
		fields["tracking_number"] = *req.TrackingNumber
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, validationErrf("invalid priority '%s'", *req.Priority)
		}
		fields["priority"] = *req.Priority
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.TotalWeight != nil {
		fields["total_weight"] = *req.TotalWeight
	}
	if req.TotalVolume != nil {
		fields["total_volume"] = *req.TotalVolume
	}
	if len(fields) == 0 {
		return shipment, nil
	}

	if err := s.shipmentRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.shipmentRepo.FindByID(id)
}

func (s *shipmentService) UpdateStatus(id uuid.UUID, status model.ShipmentStatus, current *model.Admin) (*model.Shipment, error) {
	if !status.Valid() {
		return nil, validationErrf("invalid status '%s'", status)
	}

	shipment, err := s.Get(id, current)
	if err != nil {
		return nil, err
	}
	if !shipment.Status.CanTransitionTo(status) {
		return nil, validationErrf("cannot transition shipment from '%s' to '%s'", shipment.Status, status)
	}

	fields := map[string]interface{}{"status": status}
	if status == model.StatusDelivered {
		now := time.Now()
		fields["actual_delivery_date"] = now
		if shipment.ShipmentType == model.SupplierToWarehouse {
			fields["received_date"] = now
		}
	}

	if err := s.shipmentRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}

	updated, err := s.shipmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"shipment_id": updated.ShipmentID,
		"from":        shipment.Status,
		"to":          status,
	}).Info("Shipment status updated")
	s.hub.BroadcastEvent("shipment_status_updated", map[string]interface{}{
		"shipment_id":     updated.ID,
		"shipment_number": fmt.Sprintf("%d", updated.ShipmentID),
		"status":          status,
	})

	return updated, nil
}

// Stats groups the visible shipments by status with manifest line counts.
func (s *shipmentService) Stats(current *model.Admin) ([]repository.StatusStat, error) {
	scope := scopeFor(current)
	if current != nil && current.Role != model.RoleSuperAdmin && len(scope) == 0 {
		return []repository.StatusStat{}, nil
	}
	return s.shipmentRepo.StatusDistribution(scope)
}

func (s *shipmentService) Delete(id uuid.UUID, current *model.Admin) error {
	shipment, err := s.Get(id, current)
	if err != nil {
		return err
	}
	if shipment.Status != model.StatusPending {
		return ErrShipmentNotPending
	}

	if err := s.shipmentRepo.Delete(id); err != nil {
		return err
	}

	log.WithField("shipment_id", shipment.ShipmentID).Info("Shipment deleted")
	s.hub.BroadcastEvent("shipment_deleted", map[string]interface{}{"shipment_id": shipment.ID})
	return nil
}
