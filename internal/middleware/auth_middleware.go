package middleware

import (
	"encoding/json"
	"errors"
	"strings"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const adminLocalKey = "current_admin"

// RequireAuth validates the bearer token and loads the live admin row into the
// request context. Token claims are never trusted for permissions; the DB row
// is authoritative, so revocations and lockouts take effect immediately.
func RequireAuth(adminRepo repository.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "missing authorization token",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "invalid authorization format, use: Bearer <token>",
			})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			message := "invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "token has expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": message,
			})
		}

		admin, err := adminRepo.FindByID(claims.AdminID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "account no longer exists",
			})
		}
		if !admin.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "account is deactivated",
			})
		}
		if admin.IsLocked() {
			return c.Status(fiber.StatusLocked).JSON(fiber.Map{
				"error":   "AccountLocked",
				"message": "account is temporarily locked",
			})
		}

		c.Locals(adminLocalKey, admin)
		return c.Next()
	}
}

// OptionalAuth loads the admin when a valid bearer token is present but never
// rejects the request. Used on the register route, which is open only until
// the first account exists.
func OptionalAuth(adminRepo repository.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Next()
		}
		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Next()
		}
		if admin, err := adminRepo.FindByID(claims.AdminID); err == nil && admin.IsActive && !admin.IsLocked() {
			c.Locals(adminLocalKey, admin)
		}
		return c.Next()
	}
}

// AdminFromCtx returns the authenticated admin set by RequireAuth, or nil on
// unauthenticated routes.
func AdminFromCtx(c *fiber.Ctx) *model.Admin {
	admin, _ := c.Locals(adminLocalKey).(*model.Admin)
	return admin
}

// RequireAnyPermission passes when the admin holds at least one of the given
// permissions. full_access satisfies everything.
func RequireAnyPermission(permissions ...model.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := AdminFromCtx(c)
		if admin == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "authentication required",
			})
		}

		if !admin.PermissionSet().HasAny(permissions...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Forbidden",
				"message": "requires one of: " + strings.Join(permissions, ", "),
			})
		}
		return c.Next()
	}
}

// RequireSuperAdmin limits a route to super_admin accounts.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := AdminFromCtx(c)
		if admin == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "authentication required",
			})
		}
		if admin.Role != model.RoleSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Forbidden",
				"message": "super admin access required",
			})
		}
		return c.Next()
	}
}

// RequireWarehouseAccess checks the admin's warehouse assignment against the
// warehouse referenced by the request. The id is resolved in precedence
// order: route param "id", route param "warehouseId", body "warehouse_id",
// query "warehouse_id". Requests referencing no warehouse pass through.
// super_admin always passes.
func RequireWarehouseAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := AdminFromCtx(c)
		if admin == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "authentication required",
			})
		}
		if admin.Role == model.RoleSuperAdmin {
			return c.Next()
		}

		warehouseID, ok := resolveWarehouseID(c)
		if !ok {
			return c.Next()
		}

		if !admin.CanAccessWarehouse(warehouseID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Forbidden",
				"message": "warehouse is outside your assignment",
			})
		}
		return c.Next()
	}
}

func resolveWarehouseID(c *fiber.Ctx) (uuid.UUID, bool) {
	for _, param := range []string{"id", "warehouseId"} {
		if raw := c.Params(param); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				return id, true
			}
		}
	}

	if len(c.Body()) > 0 {
		var body struct {
			WarehouseID string `json:"warehouse_id"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil && body.WarehouseID != "" {
			if id, err := uuid.Parse(body.WarehouseID); err == nil {
				return id, true
			}
		}
	}

	if raw := c.Query("warehouse_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
