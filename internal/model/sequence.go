package model

import "gorm.io/gorm"

// Sequence backs the per-entity display-id counters. Each entity type owns a
// named row that is bumped atomically, so concurrent creators can never draw
// the same number.
type Sequence struct {
	Name  string `gorm:"type:varchar(50);primaryKey" json:"name"`
	Value int64  `gorm:"not null" json:"value"`
}

// Sequence names, one per display-id-carrying entity.
const (
	SeqAdmins     = "admins"
	SeqWarehouses = "warehouses"
	SeqSections   = "warehouse_sections"
	SeqEmployees  = "employees"
	SeqProducts   = "products"
	SeqSubProduct = "sub_products"
	SeqItems      = "items"
	SeqSuppliers  = "suppliers"
	SeqCarriers   = "carriers"
	SeqShipments  = "shipments"
)

// NextSequence atomically increments and returns the counter for name,
// starting at 1. Must run on the same tx as the insert that consumes the
// value so a rollback releases nothing visible.
func NextSequence(tx *gorm.DB, name string) (int64, error) {
	var value int64
	err := tx.Raw(
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
