package repository

import (
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll(warehouseID, sectionID *uuid.UUID) ([]model.Item, error)
	FindByID(id uuid.UUID) (*model.Item, error)
	Update(item *model.Item) error
	Delete(id uuid.UUID) error
	CountInSections(sectionIDs []uuid.UUID) (int64, error)
	FindExpiringBefore(cutoff time.Time, sectionIDs []uuid.UUID, limit int) ([]model.Item, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

// FindAll optionally narrows to a warehouse (via its section graph) or a
// single section.
func (r *itemRepo) FindAll(warehouseID, sectionID *uuid.UUID) ([]model.Item, error) {
	query := r.db.Preload("SubProduct").Preload("Supplier").Preload("WarehouseSection")

	if sectionID != nil {
		query = query.Where("warehouse_section_id = ?", *sectionID)
	} else if warehouseID != nil {
		query = query.Where(
			"warehouse_section_id IN (?)",
			r.db.Model(&model.WarehouseSection{}).Select("id").Where("warehouse_id = ?", *warehouseID),
		)
	}

	var items []model.Item
	err := query.Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.Preload("SubProduct").Preload("Supplier").Preload("WarehouseSection").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Update(item *model.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) CountInSections(sectionIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Item{}).
		Where("warehouse_section_id IN ?", sectionIDs).
		Count(&count).Error
	return count, err
}

// FindExpiringBefore returns items expiring on or before cutoff, soonest
// first. A nil sectionIDs means unscoped; an empty slice matches nothing.
func (r *itemRepo) FindExpiringBefore(cutoff time.Time, sectionIDs []uuid.UUID, limit int) ([]model.Item, error) {
	query := r.db.Preload("SubProduct").Preload("WarehouseSection").
		Where("expiration_date <= ?", cutoff)
	if sectionIDs != nil {
		query = query.Where("warehouse_section_id IN ?", sectionIDs)
	}

	var items []model.Item
	err := query.Order("expiration_date ASC").Limit(limit).Find(&items).Error
	return items, err
}
