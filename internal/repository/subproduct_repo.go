package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubProductRepository interface {
	Create(subProduct *model.SubProduct) error
	FindAll() ([]model.SubProduct, error)
	FindByID(id uuid.UUID) (*model.SubProduct, error)
	Update(subProduct *model.SubProduct) error
	Delete(id uuid.UUID) error
}

type subProductRepo struct {
	db *gorm.DB
}

func NewSubProductRepo(db *gorm.DB) SubProductRepository {
	return &subProductRepo{db}
}

func (r *subProductRepo) Create(subProduct *model.SubProduct) error {
	return r.db.Create(subProduct).Error
}

func (r *subProductRepo) FindAll() ([]model.SubProduct, error) {
	var subProducts []model.SubProduct
	err := r.db.Preload("Product").Find(&subProducts).Error
	return subProducts, err
}

func (r *subProductRepo) FindByID(id uuid.UUID) (*model.SubProduct, error) {
	var subProduct model.SubProduct
	err := r.db.Preload("Product").First(&subProduct, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &subProduct, nil
}

func (r *subProductRepo) Update(subProduct *model.SubProduct) error {
	return r.db.Save(subProduct).Error
}

func (r *subProductRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.SubProduct{}, "id = ?", id).Error
}
