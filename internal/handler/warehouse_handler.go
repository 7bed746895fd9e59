package handler

import (
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WarehouseHandler serves warehouses and their sections.
type WarehouseHandler struct {
	warehouseService service.WarehouseService
}

func NewWarehouseHandler(warehouseService service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var warehouse model.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.warehouseService.CreateWarehouse(&warehouse); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Warehouse created",
		"warehouse": warehouse,
	})
}

func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	warehouses, err := h.warehouseService.ListWarehouses(middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(warehouses)
}

func (h *WarehouseHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid warehouse id")
	}

	warehouse, err := h.warehouseService.GetWarehouse(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(warehouse)
}

func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid warehouse id")
	}

	var updates model.Warehouse
	if err := c.BodyParser(&updates); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	warehouse, err := h.warehouseService.UpdateWarehouse(id, &updates)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Warehouse updated",
		"warehouse": warehouse,
	})
}

func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid warehouse id")
	}

	if err := h.warehouseService.DeleteWarehouse(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse deleted"})
}

func (h *WarehouseHandler) ListSections(c *fiber.Ctx) error {
	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, catValidation, "invalid warehouse_id filter")
		}
		warehouseID = &id
	}

	sections, err := h.warehouseService.ListSections(warehouseID)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(sections)
}

func (h *WarehouseHandler) WarehouseSections(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid warehouse id")
	}

	sections, err := h.warehouseService.ListSections(&id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(sections)
}

func (h *WarehouseHandler) CreateSection(c *fiber.Ctx) error {
	var section model.WarehouseSection
	if err := c.BodyParser(&section); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.warehouseService.CreateSection(&section); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Section created",
		"section": section,
	})
}

func (h *WarehouseHandler) GetSection(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid section id")
	}

	section, err := h.warehouseService.GetSection(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(section)
}

func (h *WarehouseHandler) UpdateSection(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid section id")
	}

	var req service.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	section, err := h.warehouseService.UpdateSection(id, &req)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Section updated",
		"section": section,
	})
}

func (h *WarehouseHandler) DeleteSection(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid section id")
	}

	if err := h.warehouseService.DeleteSection(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Section deleted"})
}
