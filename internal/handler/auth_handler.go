package handler

import (
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, catValidation, "email and password are required")
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(resp)
}

// Register creates an admin account. The route is open only while no account
// exists (initial bootstrap, which yields a super_admin). Once any account
// exists the caller must be authenticated and hold manage_admins.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	count, err := h.authService.AdminCount()
	if err != nil {
		return failFromErr(c, err)
	}

	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if count == 0 {
		req.Role = model.RoleSuperAdmin
		req.Permissions = []string{model.PermFullAccess}
	} else {
		current := middleware.AdminFromCtx(c)
		if current == nil {
			return fail(c, fiber.StatusUnauthorized, catAuthentication, "authentication required")
		}
		if !current.HasPermission(model.PermManageAdmins) {
			return fail(c, fiber.StatusForbidden, catForbidden, "requires manage_admins permission")
		}
	}

	admin, err := h.authService.Register(&req)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin registered",
		"admin":   admin.ToResponse(),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	current := middleware.AdminFromCtx(c)
	admin, err := h.authService.GetProfile(current.ID)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"admin": admin.ToResponse()})
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	current := middleware.AdminFromCtx(c)

	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	admin, err := h.authService.UpdateProfile(current.ID, &req)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"admin":   admin.ToResponse(),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	current := middleware.AdminFromCtx(c)

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fail(c, fiber.StatusBadRequest, catValidation, "current_password and new_password are required")
	}
	if len(req.NewPassword) < 6 {
		return fail(c, fiber.StatusBadRequest, catValidation, "new password must be at least 6 characters")
	}

	if err := h.authService.ChangePassword(current.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// Verify confirms the token is still valid and echoes the live account state.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	current := middleware.AdminFromCtx(c)
	return c.JSON(fiber.Map{
		"valid": true,
		"admin": current.ToResponse(),
	})
}
