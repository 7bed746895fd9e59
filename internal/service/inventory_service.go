package service

import (
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
)

// InventoryService covers the catalog (products, sub-products) and the
// physical stock (items).
type InventoryService interface {
	CreateProduct(product *model.Product) error
	ListProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, updates *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error

	CreateSubProduct(subProduct *model.SubProduct) error
	ListSubProducts() ([]model.SubProduct, error)
	GetSubProduct(id uuid.UUID) (*model.SubProduct, error)
	UpdateSubProduct(id uuid.UUID, updates *model.SubProduct) (*model.SubProduct, error)
	DeleteSubProduct(id uuid.UUID) error

	CreateItem(item *model.Item) error
	ListItems(warehouseID, sectionID *uuid.UUID) ([]model.Item, error)
	GetItem(id uuid.UUID) (*model.Item, error)
	UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.Item, error)
	DeleteItem(id uuid.UUID) error
}

type UpdateItemRequest struct {
	Quantity           *int       `json:"quantity" validate:"omitempty,gte=0"`
	WarehouseSectionID *uuid.UUID `json:"warehouse_section_id"`
	ExpirationDate     *time.Time `json:"expiration_date"`
}

type inventoryService struct {
	productRepo    repository.ProductRepository
	subProductRepo repository.SubProductRepository
	itemRepo       repository.ItemRepository
	supplierRepo   repository.SupplierRepository
	sectionRepo    repository.SectionRepository
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	subProductRepo repository.SubProductRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	sectionRepo repository.SectionRepository,
) InventoryService {
	return &inventoryService{
		productRepo:    productRepo,
		subProductRepo: subProductRepo,
		itemRepo:       itemRepo,
		supplierRepo:   supplierRepo,
		sectionRepo:    sectionRepo,
	}
}

func (s *inventoryService) CreateProduct(product *model.Product) error {
	if err := checkStruct(product); err != nil {
		return err
	}
	if existing, _ := s.productRepo.FindBySKU(product.SKU); existing != nil {
		return conflictErrf("SKU '%s' is already in use", product.SKU)
	}
	return s.productRepo.Create(product)
}

func (s *inventoryService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("product %s", id)
	}
	return product, nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, updates *model.Product) (*model.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if updates.SKU != "" && updates.SKU != product.SKU {
		if existing, _ := s.productRepo.FindBySKU(updates.SKU); existing != nil {
			return nil, conflictErrf("SKU '%s' is already in use", updates.SKU)
		}
		product.SKU = updates.SKU
	}
	if updates.Name != "" {
		product.Name = updates.Name
	}
	if updates.Description != "" {
		product.Description = updates.Description
	}
	if updates.Category != "" {
		product.Category = updates.Category
	}
	if updates.StorageCondition != "" {
		product.StorageCondition = updates.StorageCondition
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *inventoryService) CreateSubProduct(subProduct *model.SubProduct) error {
	if err := checkStruct(subProduct); err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(subProduct.ProductID); err != nil {
		return validationErrf("product %s does not exist", subProduct.ProductID)
	}
	return s.subProductRepo.Create(subProduct)
}

func (s *inventoryService) ListSubProducts() ([]model.SubProduct, error) {
	return s.subProductRepo.FindAll()
}

func (s *inventoryService) GetSubProduct(id uuid.UUID) (*model.SubProduct, error) {
	subProduct, err := s.subProductRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("sub-product %s", id)
	}
	return subProduct, nil
}

func (s *inventoryService) UpdateSubProduct(id uuid.UUID, updates *model.SubProduct) (*model.SubProduct, error) {
	subProduct, err := s.GetSubProduct(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		subProduct.Name = updates.Name
	}
	if updates.UnitSize != "" {
		subProduct.UnitSize = updates.UnitSize
	}
	if updates.ProductID != uuid.Nil && updates.ProductID != subProduct.ProductID {
		if _, err := s.productRepo.FindByID(updates.ProductID); err != nil {
			return nil, validationErrf("product %s does not exist", updates.ProductID)
		}
		subProduct.ProductID = updates.ProductID
		subProduct.Product = nil
	}

	if err := s.subProductRepo.Update(subProduct); err != nil {
		return nil, err
	}
	return subProduct, nil
}

func (s *inventoryService) DeleteSubProduct(id uuid.UUID) error {
	if _, err := s.GetSubProduct(id); err != nil {
		return err
	}
	return s.subProductRepo.Delete(id)
}

// CreateItem verifies every reference before inserting: the sub-product, the
// supplier, and the section the batch is stored in.
func (s *inventoryService) CreateItem(item *model.Item) error {
	if err := checkStruct(item); err != nil {
		return err
	}
	if _, err := s.subProductRepo.FindByID(item.SubProductID); err != nil {
		return validationErrf("sub-product %s does not exist", item.SubProductID)
	}
	if _, err := s.supplierRepo.FindByID(item.SupplierID); err != nil {
		return validationErrf("supplier %s does not exist", item.SupplierID)
	}
	if _, err := s.sectionRepo.FindByID(item.WarehouseSectionID); err != nil {
		return validationErrf("warehouse section %s does not exist", item.WarehouseSectionID)
	}
	return s.itemRepo.Create(item)
}

func (s *inventoryService) ListItems(warehouseID, sectionID *uuid.UUID) ([]model.Item, error) {
	return s.itemRepo.FindAll(warehouseID, sectionID)
}

func (s *inventoryService) GetItem(id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFoundErrf("item %s", id)
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.Item, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.WarehouseSectionID != nil {
		if _, err := s.sectionRepo.FindByID(*req.WarehouseSectionID); err != nil {
			return nil, validationErrf("warehouse section %s does not exist", *req.WarehouseSectionID)
		}
		item.WarehouseSectionID = *req.WarehouseSectionID
		item.WarehouseSection = nil
	}
	if req.ExpirationDate != nil {
		item.ExpirationDate = *req.ExpirationDate
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID) error {
	if _, err := s.GetItem(id); err != nil {
		return err
	}
	return s.itemRepo.Delete(id)
}
