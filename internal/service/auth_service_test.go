package service_test

import (
	"errors"
	"testing"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/internal/testutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (service.AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	adminRepo := repository.NewAdminRepo(db)
	warehouseRepo := repository.NewWarehouseRepo(db)
	return service.NewAuthService(adminRepo, warehouseRepo), db
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) *model.Admin {
	t.Helper()
	admin := &model.Admin{
		FirstName: "Test",
		LastName:  "Admin",
		Email:     email,
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	if err := admin.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

func TestLoginSuccess(t *testing.T) {
	svc, db := newAuthService(t)
	seedAdmin(t, db, "admin@example.com", "password1")

	resp, err := svc.Login("admin@example.com", "password1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Admin.Email != "admin@example.com" {
		t.Fatalf("unexpected admin in response: %s", resp.Admin.Email)
	}

	var stored model.Admin
	if err := db.First(&stored, "email = ?", "admin@example.com").Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if stored.LastLogin == nil {
		t.Error("expected last_login to be stamped")
	}
	if stored.LoginAttempts != 0 {
		t.Errorf("expected login_attempts reset, got %d", stored.LoginAttempts)
	}
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	svc, db := newAuthService(t)
	seedAdmin(t, db, "admin@example.com", "password1")

	_, err := svc.Login("admin@example.com", "nope")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown email yields the same error.
	_, err = svc.Login("ghost@example.com", "password1")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginInactiveAccountIsGeneric(t *testing.T) {
	svc, db := newAuthService(t)
	admin := seedAdmin(t, db, "admin@example.com", "password1")
	db.Model(admin).Update("is_active", false)

	_, err := svc.Login("admin@example.com", "password1")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	svc, db := newAuthService(t)
	admin := seedAdmin(t, db, "admin@example.com", "password1")

	for i := 0; i < model.MaxLoginAttempts; i++ {
		_, err := svc.Login("admin@example.com", "wrong")
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	var stored model.Admin
	if err := db.First(&stored, "id = ?", admin.ID).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if stored.LoginAttempts != model.MaxLoginAttempts {
		t.Fatalf("expected %d attempts recorded, got %d", model.MaxLoginAttempts, stored.LoginAttempts)
	}
	if stored.LockUntil == nil {
		t.Fatal("expected lock_until to be set after the 5th failure")
	}
	remaining := time.Until(*stored.LockUntil)
	if remaining <= 0 || remaining > model.LockDuration {
		t.Fatalf("unexpected lock window: %v", remaining)
	}

	// The 6th attempt fails with the lock error even with the right password.
	_, err := svc.Login("admin@example.com", "password1")
	if !errors.Is(err, service.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func TestLoginExpiredLockResets(t *testing.T) {
	svc, db := newAuthService(t)
	admin := seedAdmin(t, db, "admin@example.com", "password1")

	expired := time.Now().Add(-time.Minute)
	db.Model(admin).Updates(map[string]interface{}{
		"login_attempts": model.MaxLoginAttempts,
		"lock_until":     expired,
	})

	resp, err := svc.Login("admin@example.com", "password1")
	if err != nil {
		t.Fatalf("expected login to succeed after lock expiry, got %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestRegisterDefaults(t *testing.T) {
	svc, _ := newAuthService(t)

	admin, err := svc.Register(&service.RegisterRequest{
		FirstName: "New",
		LastName:  "Admin",
		Email:     "new@example.com",
		Password:  "password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("expected default role admin, got %s", admin.Role)
	}
	if !admin.HasPermission(model.PermViewAnalytics) {
		t.Error("expected default view_analytics permission")
	}
	if admin.AdminID != 1 {
		t.Errorf("expected admin_id 1, got %d", admin.AdminID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, db := newAuthService(t)
	seedAdmin(t, db, "dup@example.com", "password1")

	_, err := svc.Register(&service.RegisterRequest{
		FirstName: "Dup",
		LastName:  "Admin",
		Email:     "dup@example.com",
		Password:  "password1",
	})
	if !errors.Is(err, service.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterUnknownWarehouse(t *testing.T) {
	svc, db := newAuthService(t)
	warehouse := testutil.SeedWarehouse(t, db, "Main")

	admin, err := svc.Register(&service.RegisterRequest{
		FirstName:          "Scoped",
		LastName:           "Admin",
		Email:              "scoped@example.com",
		Password:           "password1",
		AssignedWarehouses: []uuid.UUID{warehouse.ID},
	})
	if err != nil {
		t.Fatalf("Register with valid warehouse: %v", err)
	}
	if len(admin.AssignedWarehouses) != 1 {
		t.Fatalf("expected 1 assigned warehouse, got %d", len(admin.AssignedWarehouses))
	}

	_, err = svc.Register(&service.RegisterRequest{
		FirstName:          "Bad",
		LastName:           "Admin",
		Email:              "bad@example.com",
		Password:           "password1",
		AssignedWarehouses: []uuid.UUID{uuid.New()},
	})
	if !errors.Is(err, service.ErrWarehouseRefs) {
		t.Fatalf("expected ErrWarehouseRefs, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, db := newAuthService(t)
	admin := seedAdmin(t, db, "admin@example.com", "oldpass1")

	if err := svc.ChangePassword(admin.ID, "wrong", "newpass1"); !errors.Is(err, service.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "oldpass1", "newpass1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login("admin@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login("admin@example.com", "oldpass1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
}
