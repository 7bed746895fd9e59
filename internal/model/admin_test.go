package model_test

import (
	"testing"
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
)

func TestPermissionSetHas(t *testing.T) {
	set := model.PermissionSet{model.PermManageInventory, model.PermViewAnalytics}

	if !set.Has(model.PermManageInventory) {
		t.Error("expected manage_inventory to be granted")
	}
	if set.Has(model.PermManageAdmins) {
		t.Error("manage_admins should not be granted")
	}
}

func TestPermissionSetFullAccessWildcard(t *testing.T) {
	set := model.PermissionSet{model.PermFullAccess}

	for _, p := range []model.Permission{
		model.PermManageWarehouses,
		model.PermManageAdmins,
		model.PermSystemSettings,
	} {
		if !set.Has(p) {
			t.Errorf("full_access should grant %s", p)
		}
	}
}

func TestPermissionSetHasAny(t *testing.T) {
	set := model.PermissionSet{model.PermViewAnalytics}

	if !set.HasAny(model.PermManageAdmins, model.PermViewAnalytics) {
		t.Error("expected HasAny to pass when one permission matches")
	}
	if set.HasAny(model.PermManageAdmins, model.PermManageCarriers) {
		t.Error("expected HasAny to fail when nothing matches")
	}
	if set.HasAny() {
		t.Error("expected HasAny with no arguments to fail")
	}
}

func TestAdminIsLocked(t *testing.T) {
	admin := model.Admin{}
	if admin.IsLocked() {
		t.Error("admin with no lock_until should not be locked")
	}

	past := time.Now().Add(-time.Minute)
	admin.LockUntil = &past
	if admin.IsLocked() {
		t.Error("expired lock should not count as locked")
	}

	future := time.Now().Add(time.Hour)
	admin.LockUntil = &future
	if !admin.IsLocked() {
		t.Error("future lock_until should count as locked")
	}
}

func TestCanAccessWarehouse(t *testing.T) {
	assigned := model.Warehouse{}
	assigned.ID = uuid.New()
	other := uuid.New()

	admin := model.Admin{
		Role:               model.RoleAdmin,
		AssignedWarehouses: []model.Warehouse{assigned},
	}

	if !admin.CanAccessWarehouse(assigned.ID) {
		t.Error("expected access to assigned warehouse")
	}
	if admin.CanAccessWarehouse(other) {
		t.Error("expected no access to unassigned warehouse")
	}

	admin.Role = model.RoleSuperAdmin
	if !admin.CanAccessWarehouse(other) {
		t.Error("super_admin should access any warehouse")
	}
}

func TestShipmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to model.ShipmentStatus
		allowed  bool
	}{
		{model.StatusPending, model.StatusInTransit, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusDelivered, false},
		{model.StatusInTransit, model.StatusDelivered, true},
		{model.StatusInTransit, model.StatusCancelled, true},
		{model.StatusInTransit, model.StatusPending, false},
		{model.StatusDelivered, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	admin := model.Admin{}
	if err := admin.SetPassword("s3cret!"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if admin.Password == "s3cret!" {
		t.Fatal("password stored in plaintext")
	}
	if admin.PasswordChangedAt == nil {
		t.Fatal("expected password_changed_at to be stamped")
	}
	if !admin.CheckPassword("s3cret!") {
		t.Error("correct password rejected")
	}
	if admin.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
}
