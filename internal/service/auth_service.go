package service

import (
	"errors"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/jwt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is temporarily locked due to multiple failed login attempts")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWarehouseRefs      = errors.New("one or more assigned warehouses do not exist")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Register(req *RegisterRequest) (*model.Admin, error)
	GetProfile(adminID uuid.UUID) (*model.Admin, error)
	UpdateProfile(adminID uuid.UUID, req *UpdateProfileRequest) (*model.Admin, error)
	ChangePassword(adminID uuid.UUID, currentPassword, newPassword string) error
	AdminCount() (int64, error)
}

type LoginResponse struct {
	Token string              `json:"token"`
	Admin model.AdminResponse `json:"admin"`
}

type RegisterRequest struct {
	FirstName          string      `json:"first_name" validate:"required"`
	LastName           string      `json:"last_name" validate:"required"`
	Email              string      `json:"email" validate:"required,email"`
	Password           string      `json:"password" validate:"required,min=6"`
	Role               string      `json:"role"`
	Permissions        []string    `json:"permissions"`
	AssignedWarehouses []uuid.UUID `json:"assigned_warehouses"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type authService struct {
	adminRepo     repository.AdminRepository
	warehouseRepo repository.WarehouseRepository
}

func NewAuthService(adminRepo repository.AdminRepository, warehouseRepo repository.WarehouseRepository) AuthService {
	return &authService{
		adminRepo:     adminRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// Only active accounts are candidates; a deactivated or unknown email
	// yields the same generic failure.
	admin, err := s.adminRepo.FindForAuth(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if admin.IsLocked() {
		return nil, ErrAccountLocked
	}

	if !admin.CheckPassword(password) {
		if err := s.recordFailedAttempt(admin); err != nil {
			log.WithError(err).WithField("email", email).Warn("Failed to record login attempt")
		}
		return nil, ErrInvalidCredentials
	}

	// Success clears the counter and any stale lock, and stamps last_login.
	now := time.Now()
	if err := s.adminRepo.UpdateFields(admin.ID, map[string]interface{}{
		"login_attempts": 0,
		"lock_until":     nil,
		"last_login":     now,
	}); err != nil {
		return nil, err
	}
	admin.LoginAttempts = 0
	admin.LockUntil = nil
	admin.LastLogin = &now

	token, err := jwt.GenerateToken(admin.ID, admin.AdminID, admin.Email, admin.Role, admin.Permissions)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	log.WithFields(log.Fields{"admin_id": admin.AdminID, "email": admin.Email}).Info("Admin logged in")

	return &LoginResponse{
		Token: token,
		Admin: admin.ToResponse(),
	}, nil
}

// recordFailedAttempt increments the consecutive-failure counter; the 5th
// failure locks the account for 2 hours. An expired lock resets the count.
func (s *authService) recordFailedAttempt(admin *model.Admin) error {
	if admin.LockUntil != nil && admin.LockUntil.Before(time.Now()) {
		return s.adminRepo.UpdateFields(admin.ID, map[string]interface{}{
			"login_attempts": 1,
			"lock_until":     nil,
		})
	}

	attempts := admin.LoginAttempts + 1
	fields := map[string]interface{}{"login_attempts": attempts}
	if attempts >= model.MaxLoginAttempts && admin.LockUntil == nil {
		fields["lock_until"] = time.Now().Add(model.LockDuration)
	}
	return s.adminRepo.UpdateFields(admin.ID, fields)
}

func (s *authService) Register(req *RegisterRequest) (*model.Admin, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	if existing, _ := s.adminRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	var warehouses []model.Warehouse
	if len(req.AssignedWarehouses) > 0 {
		found, err := s.warehouseRepo.FindByIDs(req.AssignedWarehouses)
		if err != nil {
			return nil, err
		}
		if len(found) != len(req.AssignedWarehouses) {
			return nil, ErrWarehouseRefs
		}
		warehouses = found
	}

	role := req.Role
	if role == "" {
		role = model.RoleAdmin
	}
	permissions := req.Permissions
	if len(permissions) == 0 {
		permissions = []string{model.PermViewAnalytics}
	}

	admin := &model.Admin{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Role:               role,
		Permissions:        datatypes.JSONSlice[string](permissions),
		AssignedWarehouses: warehouses,
		IsActive:           true,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"admin_id": admin.AdminID, "email": admin.Email}).Info("Admin registered")
	return admin, nil
}

func (s *authService) GetProfile(adminID uuid.UUID) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (s *authService) UpdateProfile(adminID uuid.UUID, req *UpdateProfileRequest) (*model.Admin, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.FindByID(adminID)
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

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *authService) ChangePassword(adminID uuid.UUID, currentPassword, newPassword string) error {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		return ErrAdminNotFound
	}

	if !admin.CheckPassword(currentPassword) {
		return ErrWrongPassword
	}

	if err := admin.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return s.adminRepo.Update(admin)
}

func (s *authService) AdminCount() (int64, error) {
	return s.adminRepo.Count()
}
