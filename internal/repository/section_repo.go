package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *model.WarehouseSection) error
	FindAll() ([]model.WarehouseSection, error)
	FindByID(id uuid.UUID) (*model.WarehouseSection, error)
	FindByWarehouse(warehouseID uuid.UUID) ([]model.WarehouseSection, error)
	FindIDsByWarehouses(warehouseIDs []uuid.UUID) ([]uuid.UUID, error)
	Update(section *model.WarehouseSection) error
	Delete(id uuid.UUID) error
}

type sectionRepo struct {
	db *gorm.DB
}

func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db}
}

// Create inserts the section and bumps the parent warehouse's denormalized
// section counter in the same transaction.
func (r *sectionRepo) Create(section *model.WarehouseSection) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(section).Error; err != nil {
			return err
		}
		return tx.Model(&model.Warehouse{}).
			Where("id = ?", section.WarehouseID).
			UpdateColumn("number_of_sections", gorm.Expr("number_of_sections + 1")).Error
	})
}

func (r *sectionRepo) FindAll() ([]model.WarehouseSection, error) {
	var sections []model.WarehouseSection
	err := r.db.Preload("Warehouse").Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) FindByID(id uuid.UUID) (*model.WarehouseSection, error) {
	var section model.WarehouseSection
	err := r.db.Preload("Warehouse").First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) FindByWarehouse(warehouseID uuid.UUID) ([]model.WarehouseSection, error) {
	var sections []model.WarehouseSection
	err := r.db.Where("warehouse_id = ?", warehouseID).Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) FindIDsByWarehouses(warehouseIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.WarehouseSection{}).
		Where("warehouse_id IN ?", warehouseIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *sectionRepo) Update(section *model.WarehouseSection) error {
	return r.db.Save(section).Error
}

// Delete removes the section and decrements the parent warehouse's counter
// in the same transaction.
func (r *sectionRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var section model.WarehouseSection
		if err := tx.First(&section, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&section).Error; err != nil {
			return err
		}
		return tx.Model(&model.Warehouse{}).
			Where("id = ?", section.WarehouseID).
			UpdateColumn("number_of_sections", gorm.Expr("number_of_sections - 1")).Error
	})
}
