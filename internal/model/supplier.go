package model

import "gorm.io/gorm"

// Supplier is an upstream vendor contact record.
type Supplier struct {
	BaseModel
	SupplierID    int64  `gorm:"uniqueIndex" json:"supplier_id"`
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255);not null" json:"contact_person" validate:"required"`
	Phone         string `gorm:"type:varchar(20);not null" json:"phone" validate:"required"`
	Email         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Address       string `gorm:"type:varchar(255);not null" json:"address" validate:"required"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.SupplierID == 0 {
		next, err := NextSequence(tx, SeqSuppliers)
		if err != nil {
			return err
		}
		s.SupplierID = next
	}
	return nil
}
