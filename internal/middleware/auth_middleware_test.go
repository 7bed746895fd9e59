package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/testutil"
	"go-warehouse-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func seedAdmin(t *testing.T, db *gorm.DB, email string, permissions ...string) *model.Admin {
	t.Helper()
	admin := &model.Admin{
		FirstName: "Test",
		LastName:  "Admin",
		Email:     email,
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	if len(permissions) > 0 {
		admin.Permissions = permissions
	}
	if err := admin.SetPassword("password1"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

func tokenFor(t *testing.T, admin *model.Admin) string {
	t.Helper()
	token, err := jwt.GenerateToken(admin.ID, admin.AdminID, admin.Email, admin.Role, admin.Permissions)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body []byte) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func errorCategory(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestRequireAuth(t *testing.T) {
	db := testutil.NewDB(t)
	adminRepo := repository.NewAdminRepo(db)

	app := fiber.New()
	app.Get("/protected", middleware.RequireAuth(adminRepo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": middleware.AdminFromCtx(c).Email})
	})

	admin := seedAdmin(t, db, "mw@example.com")
	token := tokenFor(t, admin)

	resp := doRequest(t, app, "GET", "/protected", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", resp.StatusCode)
	}
	// Token failures report Unauthorized; AuthenticationFailed is reserved
	// for bad credentials at login.
	if category := errorCategory(t, resp); category != "Unauthorized" {
		t.Errorf("missing token: expected Unauthorized category, got %q", category)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "NotBearer "+token)
	if resp, _ := app.Test(req); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("malformed header: expected 401, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "GET", "/protected", "garbage", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", resp.StatusCode)
	}
	if category := errorCategory(t, resp); category != "Unauthorized" {
		t.Errorf("bad token: expected Unauthorized category, got %q", category)
	}

	if resp := doRequest(t, app, "GET", "/protected", token, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("valid token: expected 200, got %d", resp.StatusCode)
	}

	// Deactivation takes effect on the next request, not at token expiry.
	db.Model(admin).Update("is_active", false)
	resp = doRequest(t, app, "GET", "/protected", token, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("deactivated account: expected 401, got %d", resp.StatusCode)
	}
	if category := errorCategory(t, resp); category != "Unauthorized" {
		t.Errorf("deactivated account: expected Unauthorized category, got %q", category)
	}

	db.Model(admin).Update("is_active", true)
	lock := time.Now().Add(time.Hour)
	db.Model(admin).Update("lock_until", lock)
	if resp := doRequest(t, app, "GET", "/protected", token, nil); resp.StatusCode != fiber.StatusLocked {
		t.Errorf("locked account: expected 423, got %d", resp.StatusCode)
	}
}

func TestRequireAnyPermission(t *testing.T) {
	db := testutil.NewDB(t)
	adminRepo := repository.NewAdminRepo(db)

	app := fiber.New()
	app.Get("/gated",
		middleware.RequireAuth(adminRepo),
		middleware.RequireAnyPermission(model.PermManageAdmins, model.PermSystemSettings),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	viewer := seedAdmin(t, db, "viewer@example.com", model.PermViewAnalytics)
	if resp := doRequest(t, app, "GET", "/gated", tokenFor(t, viewer), nil); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("viewer: expected 403, got %d", resp.StatusCode)
	}

	manager := seedAdmin(t, db, "manager@example.com", model.PermSystemSettings)
	if resp := doRequest(t, app, "GET", "/gated", tokenFor(t, manager), nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("manager: expected 200, got %d", resp.StatusCode)
	}

	root := seedAdmin(t, db, "root@example.com", model.PermFullAccess)
	if resp := doRequest(t, app, "GET", "/gated", tokenFor(t, root), nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("full_access: expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireWarehouseAccess(t *testing.T) {
	db := testutil.NewDB(t)
	adminRepo := repository.NewAdminRepo(db)

	assigned := testutil.SeedWarehouse(t, db, "Assigned")
	other := testutil.SeedWarehouse(t, db, "Other")

	admin := seedAdmin(t, db, "scoped@example.com")
	if err := db.Model(admin).Association("AssignedWarehouses").Append(assigned); err != nil {
		t.Fatalf("assign warehouse: %v", err)
	}

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/warehouses/:id", middleware.RequireAuth(adminRepo), middleware.RequireWarehouseAccess(), ok)
	app.Get("/items", middleware.RequireAuth(adminRepo), middleware.RequireWarehouseAccess(), ok)
	app.Post("/sections", middleware.RequireAuth(adminRepo), middleware.RequireWarehouseAccess(), ok)

	token := tokenFor(t, admin)

	// Route param.
	if resp := doRequest(t, app, "GET", "/warehouses/"+assigned.ID.String(), token, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("assigned route param: expected 200, got %d", resp.StatusCode)
	}
	if resp := doRequest(t, app, "GET", "/warehouses/"+other.ID.String(), token, nil); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("unassigned route param: expected 403, got %d", resp.StatusCode)
	}

	// Query param.
	if resp := doRequest(t, app, "GET", "/items?warehouse_id="+other.ID.String(), token, nil); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("unassigned query param: expected 403, got %d", resp.StatusCode)
	}
	if resp := doRequest(t, app, "GET", "/items?warehouse_id="+assigned.ID.String(), token, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("assigned query param: expected 200, got %d", resp.StatusCode)
	}

	// No warehouse reference passes through.
	if resp := doRequest(t, app, "GET", "/items", token, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("no reference: expected 200, got %d", resp.StatusCode)
	}

	// Body reference.
	body := []byte(`{"warehouse_id":"` + other.ID.String() + `"}`)
	if resp := doRequest(t, app, "POST", "/sections", token, body); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("unassigned body: expected 403, got %d", resp.StatusCode)
	}
	body = []byte(`{"warehouse_id":"` + assigned.ID.String() + `"}`)
	if resp := doRequest(t, app, "POST", "/sections", token, body); resp.StatusCode != fiber.StatusOK {
		t.Errorf("assigned body: expected 200, got %d", resp.StatusCode)
	}

	// super_admin bypasses scoping.
	super := seedAdmin(t, db, "root@example.com")
	db.Model(super).Update("role", model.RoleSuperAdmin)
	super.Role = model.RoleSuperAdmin
	if resp := doRequest(t, app, "GET", "/warehouses/"+other.ID.String(), tokenFor(t, super), nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("super_admin: expected 200, got %d", resp.StatusCode)
	}
}
