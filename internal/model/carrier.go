package model

import "gorm.io/gorm"

// Carrier is a shipping company used to move shipments.
type Carrier struct {
	BaseModel
	CarrierID   int64  `gorm:"uniqueIndex" json:"carrier_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone       string `gorm:"type:varchar(20);not null" json:"phone" validate:"required"`
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	ServiceType string `gorm:"type:varchar(100);not null" json:"service_type" validate:"required"`
}

func (c *Carrier) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if c.CarrierID == 0 {
		next, err := NextSequence(tx, SeqCarriers)
		if err != nil {
			return err
		}
		c.CarrierID = next
	}
	return nil
}
