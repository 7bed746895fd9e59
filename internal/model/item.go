package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a concrete batch of a sub-product stored in a warehouse section.
// The owning warehouse is derived transitively through the section.
type Item struct {
	BaseModel
	ItemID             int64             `gorm:"uniqueIndex" json:"item_id"`
	SubProductID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"sub_product_id" validate:"uuid_required"`
	SubProduct         *SubProduct       `gorm:"foreignKey:SubProductID" json:"sub_product,omitempty"`
	SupplierID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier           *Supplier         `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	WarehouseSectionID uuid.UUID         `gorm:"type:uuid;not null;index" json:"warehouse_section_id" validate:"uuid_required"`
	WarehouseSection   *WarehouseSection `gorm:"foreignKey:WarehouseSectionID" json:"warehouse_section,omitempty"`
	Quantity           int               `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	ExpirationDate     time.Time         `gorm:"not null;index" json:"expiration_date" validate:"required"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if err := i.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if i.ItemID == 0 {
		next, err := NextSequence(tx, SeqItems)
		if err != nil {
			return err
		}
		i.ItemID = next
	}
	return nil
}
