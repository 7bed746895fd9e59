package service

import (
	"errors"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrSelfDeactivate = errors.New("cannot deactivate your own account")
	ErrSelfDelete     = errors.New("cannot delete your own account")
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

type UpdateAdminRequest struct {
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	Email              string      `json:"email" validate:"omitempty,email"`
	Role               string      `json:"role"`
	Permissions        []string    `json:"permissions"`
	AssignedWarehouses []uuid.UUID `json:"assigned_warehouses"`
}

type AdminStats struct {
	TotalAdmins  int64            `json:"total_admins"`
	ActiveAdmins int64            `json:"active_admins"`
	ByRole       map[string]int64 `json:"by_role"`
}

type AdminService interface {
	List(isActive *bool, page, limit int) ([]model.AdminResponse, Pagination, error)
	Get(id uuid.UUID) (*model.Admin, error)
	Update(id uuid.UUID, req *UpdateAdminRequest) (*model.Admin, error)
	Delete(id, currentID uuid.UUID) error
	SetActive(id, currentID uuid.UUID, isActive bool) (*model.Admin, error)
	ResetPassword(id uuid.UUID, newPassword string) error
	Stats() (*AdminStats, error)
}

type adminService struct {
	adminRepo     repository.AdminRepository
	warehouseRepo repository.WarehouseRepository
}

func NewAdminService(adminRepo repository.AdminRepository, warehouseRepo repository.WarehouseRepository) AdminService {
	return &adminService{
		adminRepo:     adminRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *adminService) List(isActive *bool, page, limit int) ([]model.AdminResponse, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	admins, total, err := s.adminRepo.FindAll(isActive, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	responses := make([]model.AdminResponse, len(admins))
	for i := range admins {
		responses[i] = admins[i].ToResponse()
	}
	return responses, NewPagination(page, limit, total), nil
}

func (s *adminService) Get(id uuid.UUID) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (s *adminService) Update(id uuid.UUID, req *UpdateAdminRequest) (*model.Admin, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		return nil, ErrAdminNotFound
	}

	if req.Email != "" && req.Email != admin.Email {
		if existing, _ := s.adminRepo.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmailExists
		}
		admin.Email = req.Email
	}
	if req.FirstName != "" {
		admin.FirstName = req.FirstName
	}
	if req.LastName != "" {
		admin.LastName = req.LastName
	}
	if req.Role != "" {
		admin.Role = req.Role
	}
	if req.Permissions != nil {
		admin.Permissions = datatypes.JSONSlice[string](req.Permissions)
	}

	if req.AssignedWarehouses != nil {
		warehouses, err := s.warehouseRepo.FindByIDs(req.AssignedWarehouses)
		if err != nil {
			return nil, err
		}
		if len(warehouses) != len(req.AssignedWarehouses) {
			return nil, ErrWarehouseRefs
		}
		if err := s.adminRepo.ReplaceAssignedWarehouses(admin, warehouses); err != nil {
			return nil, err
		}
		admin.AssignedWarehouses = warehouses
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) Delete(id, currentID uuid.UUID) error {
	if id == currentID {
		return ErrSelfDelete
	}
	if _, err := s.adminRepo.FindByID(id); err != nil {
		return ErrAdminNotFound
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return err
	}
	log.WithField("admin_id", id).Info("Admin deleted")
	return nil
}

func (s *adminService) SetActive(id, currentID uuid.UUID, isActive bool) (*model.Admin, error) {
	if id == currentID && !isActive {
		return nil, ErrSelfDeactivate
	}

	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		return nil, ErrAdminNotFound
	}

	fields := map[string]interface{}{"is_active": isActive}
	if isActive {
		// Reactivation also clears any leftover lockout state.
		fields["login_attempts"] = 0
		fields["lock_until"] = nil
	}
	if err := s.adminRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	admin.IsActive = isActive
	if isActive {
		admin.LoginAttempts = 0
		admin.LockUntil = nil
	}
	return admin, nil
}

func (s *adminService) ResetPassword(id uuid.UUID, newPassword string) error {
	if len(newPassword) < 6 {
		return validationErrf("password must be at least 6 characters")
	}

	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		return ErrAdminNotFound
	}
	if err := admin.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	log.WithField("admin_id", admin.AdminID).Info("Admin password reset")
	return nil
}

func (s *adminService) Stats() (*AdminStats, error) {
	total, err := s.adminRepo.Count()
	if err != nil {
		return nil, err
	}
	byRole, err := s.adminRepo.StatsByRole()
	if err != nil {
		return nil, err
	}

	var active int64
	for _, count := range byRole {
		active += count
	}
	return &AdminStats{
		TotalAdmins:  total,
		ActiveAdmins: active,
		ByRole:       byRole,
	}, nil
}
