package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse is a physical storage site. NumberOfSections is denormalized and
// maintained transactionally by the section repository.
type Warehouse struct {
	BaseModel
	WarehouseID      int64      `gorm:"uniqueIndex" json:"warehouse_id"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Location         string     `gorm:"type:varchar(255);not null" json:"location" validate:"required"`
	Size             float64    `gorm:"not null" json:"size" validate:"required,gt=0"`
	CapacityUnit     string     `gorm:"type:varchar(20);not null" json:"capacity_unit" validate:"required"`
	ManagerID        *uuid.UUID `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	Manager          *Employee  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	NumberOfSections int        `gorm:"default:0" json:"number_of_sections"`

	Sections []WarehouseSection `gorm:"foreignKey:WarehouseID" json:"sections,omitempty"`
}

func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if err := w.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if w.WarehouseID == 0 {
		next, err := NextSequence(tx, SeqWarehouses)
		if err != nil {
			return err
		}
		w.WarehouseID = next
	}
	return nil
}
