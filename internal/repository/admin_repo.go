package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByEmail(email string) (*model.Admin, error)
	FindForAuth(email string) (*model.Admin, error)
	FindByID(id uuid.UUID) (*model.Admin, error)
	FindAll(isActive *bool, page, limit int) ([]model.Admin, int64, error)
	Create(admin *model.Admin) error
	Update(admin *model.Admin) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	ReplaceAssignedWarehouses(admin *model.Admin, warehouses []model.Warehouse) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	StatsByRole() (map[string]int64, error)
}

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db}
}

func (r *adminRepo) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Preload("AssignedWarehouses").Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindForAuth only matches active accounts, so login never reveals whether a
// deactivated admin exists.
func (r *adminRepo) FindForAuth(email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.Preload("AssignedWarehouses").
		Where("email = ? AND is_active = ?", email, true).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) FindByID(id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Preload("AssignedWarehouses").First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) FindAll(isActive *bool, page, limit int) ([]model.Admin, int64, error) {
	query := r.db.Model(&model.Admin{})
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var admins []model.Admin
	err := query.Preload("AssignedWarehouses").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&admins).Error
	return admins, total, err
}

func (r *adminRepo) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepo) Update(admin *model.Admin) error {
	return r.db.Save(admin).Error
}

// UpdateFields writes specific columns without touching the rest of the row.
// Used for login bookkeeping (attempts, lock, last_login) so a stale struct
// never clobbers concurrent changes.
func (r *adminRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	return r.db.Model(&model.Admin{}).Where("id = ?", id).Updates(fields).Error
}

func (r *adminRepo) ReplaceAssignedWarehouses(admin *model.Admin, warehouses []model.Warehouse) error {
	return r.db.Model(admin).Association("AssignedWarehouses").Replace(warehouses)
}

// Delete deactivates the account instead of removing the row. The admin stays
// listable as inactive and its email stays visibly taken.
func (r *adminRepo) Delete(id uuid.UUID) error {
	return r.UpdateFields(id, map[string]interface{}{"is_active": false})
}

func (r *adminRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Admin{}).Count(&count).Error
	return count, err
}

func (r *adminRepo) StatsByRole() (map[string]int64, error) {
	type row struct {
		Role  string
		Count int64
	}
	var rows []row
	err := r.db.Model(&model.Admin{}).
		Select("role, COUNT(*) as count").
		Where("is_active = ?", true).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(rows))
	for _, row := range rows {
		stats[row.Role] = row.Count
	}
	return stats, nil
}
