package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindAll() ([]model.Warehouse, error)
	FindByID(id uuid.UUID) (*model.Warehouse, error)
	FindByIDs(ids []uuid.UUID) ([]model.Warehouse, error)
	CountByIDs(ids []uuid.UUID) (int64, error)
	Update(warehouse *model.Warehouse) error
	Delete(id uuid.UUID) error
}

type warehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db}
}

func (r *warehouseRepo) Create(warehouse *model.Warehouse) error {
	return r.db.Create(warehouse).Error
}

func (r *warehouseRepo) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.Preload("Manager").Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) FindByID(id uuid.UUID) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := r.db.Preload("Manager").First(&warehouse, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepo) FindByIDs(ids []uuid.UUID) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.Where("id IN ?", ids).Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) CountByIDs(ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Warehouse{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *warehouseRepo) Update(warehouse *model.Warehouse) error {
	return r.db.Save(warehouse).Error
}

func (r *warehouseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Warehouse{}, "id = ?", id).Error
}
