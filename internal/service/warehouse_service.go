package service

import (
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type WarehouseService interface {
	CreateWarehouse(warehouse *model.Warehouse) error
	ListWarehouses(current *model.Admin) ([]model.Warehouse, error)
	GetWarehouse(id uuid.UUID) (*model.Warehouse, error)
	UpdateWarehouse(id uuid.UUID, updates *model.Warehouse) (*model.Warehouse, error)
	DeleteWarehouse(id uuid.UUID) error

	CreateSection(section *model.WarehouseSection) error
	ListSections(warehouseID *uuid.UUID) ([]model.WarehouseSection, error)
	GetSection(id uuid.UUID) (*model.WarehouseSection, error)
	UpdateSection(id uuid.UUID, req *UpdateSectionRequest) (*model.WarehouseSection, error)
	DeleteSection(id uuid.UUID) error
}

type UpdateSectionRequest struct {
	Name             string `json:"name"`
	SectionType      string `json:"section_type"`
	TemperatureRange string `json:"temperature_range"`
	IsAvailable      *bool  `json:"is_available"`
}

type warehouseService struct {
	warehouseRepo repository.WarehouseRepository
	sectionRepo   repository.SectionRepository
	employeeRepo  repository.EmployeeRepository
	itemRepo      repository.ItemRepository
}

func NewWarehouseService(
	warehouseRepo repository.WarehouseRepository,
	sectionRepo repository.SectionRepository,
	employeeRepo repository.EmployeeRepository,
	itemRepo repository.ItemRepository,
) WarehouseService {
	return &warehouseService{
		warehouseRepo: warehouseRepo,
		sectionRepo:   sectionRepo,
		employeeRepo:  employeeRepo,
		itemRepo:      itemRepo,
	}
}

func (s *warehouseService) CreateWarehouse(warehouse *model.Warehouse) error {
	if err := checkStruct(warehouse); err != nil {
		return err
	}
	if warehouse.ManagerID != nil {
		if _, err := s.employeeRepo.FindByID(*warehouse.ManagerID); err != nil {
			return validationErrf("manager %s does not exist", *warehouse.ManagerID)
		}
	}
	if err := s.warehouseRepo.Create(warehouse); err != nil {
		return err
	}
	log.WithField("warehouse_id", warehouse.WarehouseID).Info("Warehouse created")
	return nil
}

// ListWarehouses returns all warehouses for super_admin and only the assigned
// ones for scoped admins.
func (s *warehouseService) ListWarehouses(current *model.Admin) ([]model.Warehouse, error) {
	if current == nil || current.Role == model.RoleSuperAdmin {
		return s.warehouseRepo.FindAll()
	}
	ids := current.AssignedWarehouseIDs()
	if len(ids) == 0 {
		return []model.Warehouse{}, nil
	}
	return s.warehouseRepo.FindByIDs(ids)
}

func (s *warehouseService) GetWarehouse(id uuid.UUID) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("warehouse %s", id)
	}
	return warehouse, nil
}

func (s *warehouseService) UpdateWarehouse(id uuid.UUID, updates *model.Warehouse) (*model.Warehouse, error) {
	warehouse, err := s.GetWarehouse(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		warehouse.Name = updates.Name
	}
	if updates.Location != "" {
		warehouse.Location = updates.Location
	}
	if updates.Size > 0 {
		warehouse.Size = updates.Size
	}
	if updates.CapacityUnit != "" {
		warehouse.CapacityUnit = updates.CapacityUnit
	}
	if updates.ManagerID != nil {
		if _, err := s.employeeRepo.FindByID(*updates.ManagerID); err != nil {
			return nil, validationErrf("manager %s does not exist", *updates.ManagerID)
		}
		warehouse.ManagerID = updates.ManagerID
	}

	if err := s.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// DeleteWarehouse refuses to remove a warehouse that still holds stock.
func (s *warehouseService) DeleteWarehouse(id uuid.UUID) error {
	if _, err := s.GetWarehouse(id); err != nil {
		return err
	}

	sectionIDs, err := s.sectionRepo.FindIDsByWarehouses([]uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(sectionIDs) > 0 {
		itemCount, err := s.itemRepo.CountInSections(sectionIDs)
		if err != nil {
			return err
		}
		if itemCount > 0 {
			return conflictErrf("warehouse still holds %d items", itemCount)
		}
	}
	return s.warehouseRepo.Delete(id)
}

func (s *warehouseService) CreateSection(section *model.WarehouseSection) error {
	if err := checkStruct(section); err != nil {
		return err
	}
	if _, err := s.warehouseRepo.FindByID(section.WarehouseID); err != nil {
		return validationErrf("warehouse %s does not exist", section.WarehouseID)
	}
	return s.sectionRepo.Create(section)
}

func (s *warehouseService) ListSections(warehouseID *uuid.UUID) ([]model.WarehouseSection, error) {
	if warehouseID != nil {
		return s.sectionRepo.FindByWarehouse(*warehouseID)
	}
	return s.sectionRepo.FindAll()
}

func (s *warehouseService) GetSection(id uuid.UUID) (*model.WarehouseSection, error) {
	section, err := s.sectionRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("section %s", id)
	}
	return section, nil
}

func (s *warehouseService) UpdateSection(id uuid.UUID, req *UpdateSectionRequest) (*model.WarehouseSection, error) {
	section, err := s.GetSection(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		section.Name = req.Name
	}
	if req.SectionType != "" {
		section.SectionType = req.SectionType
	}
	if req.TemperatureRange != "" {
		section.TemperatureRange = req.TemperatureRange
	}
	if req.IsAvailable != nil {
		section.IsAvailable = *req.IsAvailable
	}

	if err := s.sectionRepo.Update(section); err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection refuses to remove a section that still holds items, then
// removes it and decrements the warehouse counter transactionally.
func (s *warehouseService) DeleteSection(id uuid.UUID) error {
	if _, err := s.GetSection(id); err != nil {
		return err
	}
	itemCount, err := s.itemRepo.CountInSections([]uuid.UUID{id})
	if err != nil {
		return err
	}
	if itemCount > 0 {
		return conflictErrf("section still holds %d items", itemCount)
	}
	return s.sectionRepo.Delete(id)
}
