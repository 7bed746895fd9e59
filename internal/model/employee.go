package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a warehouse staff record.
type Employee struct {
	BaseModel
	EmployeeID  int64      `gorm:"uniqueIndex" json:"employee_id"`
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Role        string     `gorm:"type:varchar(100);not null" json:"role" validate:"required"`
	Phone       string     `gorm:"type:varchar(20);not null" json:"phone" validate:"required"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	WarehouseID *uuid.UUID `gorm:"type:uuid;index" json:"warehouse_id,omitempty"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if err := e.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if e.EmployeeID == 0 {
		next, err := NextSequence(tx, SeqEmployees)
		if err != nil {
			return err
		}
		e.EmployeeID = next
	}
	return nil
}
