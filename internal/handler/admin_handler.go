package handler

import (
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService service.AdminService
	authService  service.AuthService
}

func NewAdminHandler(adminService service.AdminService, authService service.AuthService) *AdminHandler {
	return &AdminHandler{adminService: adminService, authService: authService}
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	var isActive *bool
	switch c.Query("is_active") {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	admins, pagination, err := h.adminService.List(isActive, page, limit)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"admins":     admins,
		"pagination": pagination,
	})
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid admin id")
	}

	admin, err := h.adminService.Get(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"admin": admin.ToResponse()})
}

// Create reuses the registration flow; the route is gated on manage_admins.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	admin, err := h.authService.Register(&req)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin created",
		"admin":   admin.ToResponse(),
	})
}

func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid admin id")
	}

	var req service.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	admin, err := h.adminService.Update(id, &req)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Admin updated",
		"admin":   admin.ToResponse(),
	})
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid admin id")
	}

	current := middleware.AdminFromCtx(c)
	if err := h.adminService.Delete(id, current.ID); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Admin deleted"})
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid admin id")
	}

	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "is_active is required")
	}

	current := middleware.AdminFromCtx(c)
	admin, err := h.adminService.SetActive(id, current.ID, *req.IsActive)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Admin status updated",
		"admin":   admin.ToResponse(),
	})
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid admin id")
	}

	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.adminService.ResetPassword(id, req.NewPassword); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset"})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(stats)
}
