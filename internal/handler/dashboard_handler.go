package handler

import (
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.dashboardService.Overview(middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(overview)
}

func (h *DashboardHandler) Warehouses(c *fiber.Ctx) error {
	analytics, err := h.dashboardService.Warehouses(middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(analytics)
}

func (h *DashboardHandler) Inventory(c *fiber.Ctx) error {
	analytics, err := h.dashboardService.Inventory(middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(analytics)
}

func (h *DashboardHandler) Shipments(c *fiber.Ctx) error {
	analytics, err := h.dashboardService.Shipments(middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(analytics)
}

// Health is limited to super_admin by route middleware.
func (h *DashboardHandler) Health(c *fiber.Ctx) error {
	report, err := h.dashboardService.Health()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(report)
}
