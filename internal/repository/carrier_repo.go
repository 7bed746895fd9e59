package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarrierRepository interface {
	Create(carrier *model.Carrier) error
	FindAll() ([]model.Carrier, error)
	FindByID(id uuid.UUID) (*model.Carrier, error)
	Update(carrier *model.Carrier) error
	Delete(id uuid.UUID) error
}

type carrierRepo struct {
	db *gorm.DB
}

func NewCarrierRepo(db *gorm.DB) CarrierRepository {
	return &carrierRepo{db}
}

func (r *carrierRepo) Create(carrier *model.Carrier) error {
	return r.db.Create(carrier).Error
}

func (r *carrierRepo) FindAll() ([]model.Carrier, error) {
	var carriers []model.Carrier
	err := r.db.Find(&carriers).Error
	return carriers, err
}

func (r *carrierRepo) FindByID(id uuid.UUID) (*model.Carrier, error) {
	var carrier model.Carrier
	err := r.db.First(&carrier, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (r *carrierRepo) Update(carrier *model.Carrier) error {
	return r.db.Save(carrier).Error
}

func (r *carrierRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Carrier{}, "id = ?", id).Error
}
