package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarehouseSection is the sub-division of a warehouse that items are actually
// stored in, with its own type and temperature attributes.
type WarehouseSection struct {
	BaseModel
	SectionID        int64      `gorm:"uniqueIndex" json:"section_id"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	WarehouseID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"warehouse_id" validate:"uuid_required"`
	Warehouse        *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	SectionType      string     `gorm:"type:varchar(100);not null" json:"section_type" validate:"required"`
	TemperatureRange string     `gorm:"type:varchar(50);not null" json:"temperature_range" validate:"required"`
	IsAvailable      bool       `gorm:"default:true" json:"is_available"`
}

func (s *WarehouseSection) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.SectionID == 0 {
		next, err := NextSequence(tx, SeqSections)
		if err != nil {
			return err
		}
		s.SectionID = next
	}
	return nil
}
