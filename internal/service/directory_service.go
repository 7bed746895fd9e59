package service

import (
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
)

// DirectoryService covers the contact-book resources: suppliers, carriers and
// employees.
type DirectoryService interface {
	CreateSupplier(supplier *model.Supplier) error
	ListSuppliers() ([]model.Supplier, error)
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, updates *model.Supplier) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error

	CreateCarrier(carrier *model.Carrier) error
	ListCarriers() ([]model.Carrier, error)
	GetCarrier(id uuid.UUID) (*model.Carrier, error)
	UpdateCarrier(id uuid.UUID, updates *model.Carrier) (*model.Carrier, error)
	DeleteCarrier(id uuid.UUID) error

	CreateEmployee(employee *model.Employee) error
	ListEmployees() ([]model.Employee, error)
	GetEmployee(id uuid.UUID) (*model.Employee, error)
	UpdateEmployee(id uuid.UUID, updates *model.Employee) (*model.Employee, error)
	DeleteEmployee(id uuid.UUID) error
}

type directoryService struct {
	supplierRepo  repository.SupplierRepository
	carrierRepo   repository.CarrierRepository
	employeeRepo  repository.EmployeeRepository
	warehouseRepo repository.WarehouseRepository
}

func NewDirectoryService(
	supplierRepo repository.SupplierRepository,
	carrierRepo repository.CarrierRepository,
	employeeRepo repository.EmployeeRepository,
	warehouseRepo repository.WarehouseRepository,
) DirectoryService {
	return &directoryService{
		supplierRepo:  supplierRepo,
		carrierRepo:   carrierRepo,
		employeeRepo:  employeeRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *directoryService) CreateSupplier(supplier *model.Supplier) error {
	if err := checkStruct(supplier); err != nil {
		return err
	}
	return s.supplierRepo.Create(supplier)
}

func (s *directoryService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *directoryService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("supplier %s", id)
	}
	return supplier, nil
}

func (s *directoryService) UpdateSupplier(id uuid.UUID, updates *model.Supplier) (*model.Supplier, error) {
	supplier, err := s.GetSupplier(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		supplier.Name = updates.Name
	}
	if updates.ContactPerson != "" {
		supplier.ContactPerson = updates.ContactPerson
	}
	if updates.Phone != "" {
		supplier.Phone = updates.Phone
	}
	if updates.Email != "" {
		supplier.Email = updates.Email
	}
	if updates.Address != "" {
		supplier.Address = updates.Address
	}

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *directoryService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.GetSupplier(id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(id)
}

func (s *directoryService) CreateCarrier(carrier *model.Carrier) error {
	if err := checkStruct(carrier); err != nil {
		return err
	}
	return s.carrierRepo.Create(carrier)
}

func (s *directoryService) ListCarriers() ([]model.Carrier, error) {
	return s.carrierRepo.FindAll()
}

func (s *directoryService) GetCarrier(id uuid.UUID) (*model.Carrier, error) {
	carrier, err := s.carrierRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("carrier %s", id)
	}
	return carrier, nil
}

func (s *directoryService) UpdateCarrier(id uuid.UUID, updates *model.Carrier) (*model.Carrier, error) {
	carrier, err := s.GetCarrier(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		carrier.Name = updates.Name
	}
	if updates.Phone != "" {
		carrier.Phone = updates.Phone
	}
	if updates.Email != "" {
		carrier.Email = updates.Email
	}
	if updates.ServiceType != "" {
		carrier.ServiceType = updates.ServiceType
	}

	if err := s.carrierRepo.Update(carrier); err != nil {
		return nil, err
	}
	return carrier, nil
}

func (s *directoryService) DeleteCarrier(id uuid.UUID) error {
	if _, err := s.GetCarrier(id); err != nil {
		return err
	}
	return s.carrierRepo.Delete(id)
}

func (s *directoryService) CreateEmployee(employee *model.Employee) error {
	if err := checkStruct(employee); err != nil {
		return err
	}
	if employee.WarehouseID != nil {
		if _, err := s.warehouseRepo.FindByID(*employee.WarehouseID); err != nil {
			return validationErrf("warehouse %s does not exist", *employee.WarehouseID)
		}
	}
	return s.employeeRepo.Create(employee)
}

func (s *directoryService) ListEmployees() ([]model.Employee, error) {
	return s.employeeRepo.FindAll()
}

func (s *directoryService) GetEmployee(id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("employee %s", id)
	}
	return employee, nil
}

func (s *directoryService) UpdateEmployee(id uuid.UUID, updates *model.Employee) (*model.Employee, error) {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	if updates.FirstName != "" {
		employee.FirstName = updates.FirstName
	}
	if updates.LastName != "" {
		employee.LastName = updates.LastName
	}
	if updates.Role != "" {
		employee.Role = updates.Role
	}
	if updates.Phone != "" {
		employee.Phone = updates.Phone
	}
	if updates.Email != "" {
		employee.Email = updates.Email
	}
	if updates.WarehouseID != nil {
		if _, err := s.warehouseRepo.FindByID(*updates.WarehouseID); err != nil {
			return nil, validationErrf("warehouse %s does not exist", *updates.WarehouseID)
		}
		employee.WarehouseID = updates.WarehouseID
		employee.Warehouse = nil
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *directoryService) DeleteEmployee(id uuid.UUID) error {
	if _, err := s.GetEmployee(id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(id)
}
