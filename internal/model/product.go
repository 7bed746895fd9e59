package model

import "gorm.io/gorm"

// Product is a catalog entry; concrete stock lives in items via sub-products.
type Product struct {
	BaseModel
	ProductID        int64  `gorm:"uniqueIndex" json:"product_id"`
	Name             string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU              string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Description      string `gorm:"type:text" json:"description"`
	Category         string `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`
	StorageCondition string `gorm:"type:varchar(100);not null" json:"storage_condition" validate:"required"`

	SubProducts []SubProduct `gorm:"foreignKey:ProductID" json:"sub_products,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if err := p.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if p.ProductID == 0 {
		next, err := NextSequence(tx, SeqProducts)
		if err != nil {
			return err
		}
		p.ProductID = next
	}
	return nil
}
