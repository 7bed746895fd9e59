package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Permission is a string capability token held by an admin.
type Permission = string

// Permission vocabulary. PermFullAccess is a wildcard granting all others.
const (
	PermManageWarehouses Permission = "manage_warehouses"
	PermManageEmployees  Permission = "manage_employees"
	PermManageInventory  Permission = "manage_inventory"
	PermManageShipments  Permission = "manage_shipments"
	PermManageSuppliers  Permission = "manage_suppliers"
	PermManageCarriers   Permission = "manage_carriers"
	PermViewAnalytics    Permission = "view_analytics"
	PermManageAdmins     Permission = "manage_admins"
	PermSystemSettings   Permission = "system_settings"
	PermFullAccess       Permission = "full_access"
)

// Admin roles. Role is free-form in the schema; these are the conventional
// values. super_admin bypasses warehouse scoping entirely.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Account lockout policy: the 5th consecutive failed login locks the account
// for 2 hours.
const (
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour
)

// PermissionSet is an admin's capability set.
type PermissionSet []Permission

// Has reports whether the set grants p, honoring the full_access wildcard.
func (s PermissionSet) Has(p Permission) bool {
	for _, held := range s {
		if held == PermFullAccess || held == p {
			return true
		}
	}
	return false
}

// HasAny reports whether the set grants at least one of required (logical OR).
func (s PermissionSet) HasAny(required ...Permission) bool {
	for _, p := range required {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Admin represents an administrator account.
type Admin struct {
	BaseModel
	AdminID            int64                       `gorm:"uniqueIndex" json:"admin_id"`
	FirstName          string                      `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName           string                      `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Email              string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password           string                      `gorm:"type:varchar(255);not null" json:"-"`
	Role               string                      `gorm:"type:varchar(50);default:admin;index" json:"role"`
	Permissions        datatypes.JSONSlice[string] `json:"permissions"`
	AssignedWarehouses []Warehouse                 `gorm:"many2many:admin_warehouses;" json:"assigned_warehouses,omitempty"`
	IsActive           bool                        `gorm:"default:true;index" json:"is_active"`
	LastLogin          *time.Time                  `json:"last_login,omitempty"`
	PasswordChangedAt  *time.Time                  `json:"-"`
	LoginAttempts      int                         `gorm:"default:0" json:"-"`
	LockUntil          *time.Time                  `json:"-"`
}

// BeforeCreate assigns the sequential admin_id.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if err := a.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if a.AdminID == 0 {
		next, err := NextSequence(tx, SeqAdmins)
		if err != nil {
			return err
		}
		a.AdminID = next
	}
	return nil
}

// FullName joins first and last name.
func (a *Admin) FullName() string {
	return a.FirstName + " " + a.LastName
}

// SetPassword hashes and sets the admin's password.
func (a *Admin) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	now := time.Now()
	a.PasswordChangedAt = &now
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (a *Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) == nil
}

// PermissionSet returns the admin's capability set.
func (a *Admin) PermissionSet() PermissionSet {
	return PermissionSet(a.Permissions)
}

// HasPermission reports whether the admin holds p (or full_access).
func (a *Admin) HasPermission(p Permission) bool {
	return a.PermissionSet().Has(p)
}

// IsLocked reports whether the account is currently locked out.
func (a *Admin) IsLocked() bool {
	return a.LockUntil != nil && a.LockUntil.After(time.Now())
}

// CanAccessWarehouse reports whether the admin may act on the warehouse.
// super_admin bypasses assignment checks.
func (a *Admin) CanAccessWarehouse(warehouseID uuid.UUID) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	for _, w := range a.AssignedWarehouses {
		if w.ID == warehouseID {
			return true
		}
	}
	return false
}

// AssignedWarehouseIDs returns the internal ids of the assigned warehouses.
func (a *Admin) AssignedWarehouseIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(a.AssignedWarehouses))
	for i, w := range a.AssignedWarehouses {
		ids[i] = w.ID
	}
	return ids
}

// AdminResponse is the sanitized API shape (no password or lockout state).
type AdminResponse struct {
	ID                 uuid.UUID   `json:"id"`
	AdminID            int64       `json:"admin_id"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	Email              string      `json:"email"`
	Role               string      `json:"role"`
	Permissions        []string    `json:"permissions"`
	AssignedWarehouses []Warehouse `json:"assigned_warehouses"`
	IsActive           bool        `json:"is_active"`
	LastLogin          *time.Time  `json:"last_login,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// ToResponse converts Admin to AdminResponse.
func (a *Admin) ToResponse() AdminResponse {
	perms := a.Permissions
	if perms == nil {
		perms = datatypes.JSONSlice[string]{}
	}
	warehouses := a.AssignedWarehouses
	if warehouses == nil {
		warehouses = []Warehouse{}
	}
	return AdminResponse{
		ID:                 a.ID,
		AdminID:            a.AdminID,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Email:              a.Email,
		Role:               a.Role,
		Permissions:        perms,
		AssignedWarehouses: warehouses,
		IsActive:           a.IsActive,
		LastLogin:          a.LastLogin,
		CreatedAt:          a.CreatedAt,
	}
}
