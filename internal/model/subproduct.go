package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubProduct is a packaging variant of a product (e.g. 500ml bottle).
type SubProduct struct {
	BaseModel
	SubProductID int64     `gorm:"uniqueIndex" json:"sub_product_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	UnitSize     string    `gorm:"type:varchar(50);not null" json:"unit_size" validate:"required"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (s *SubProduct) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.SubProductID == 0 {
		next, err := NextSequence(tx, SeqSubProduct)
		if err != nil {
			return err
		}
		s.SubProductID = next
	}
	return nil
}
