package handler

import (
	"time"

	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ShipmentHandler struct {
	shipmentService service.ShipmentService
}

func NewShipmentHandler(shipmentService service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var req service.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	shipment, err := h.shipmentService.Create(&req, middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Shipment created",
		"shipment": shipment,
	})
}

func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	filter, err := parseShipmentFilter(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, err.Error())
	}

	shipments, pagination, err := h.shipmentService.List(filter, middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"shipments":  shipments,
		"pagination": pagination,
	})
}

func (h *ShipmentHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid shipment id")
	}

	shipment, err := h.shipmentService.Get(id, middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(shipment)
}

func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid shipment id")
	}

	var req service.UpdateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	shipment, err := h.shipmentService.Update(id, &req, middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Shipment updated",
		"shipment": shipment,
	})
}

type updateStatusRequest struct {
	Status model.ShipmentStatus `json:"status"`
}

func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid shipment id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return fail(c, fiber.StatusBadRequest, catValidation, "status is required")
	}

	shipment, err := h.shipmentService.UpdateStatus(id, req.Status, middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Shipment status updated",
		"shipment": shipment,
	})
}

func (h *ShipmentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.shipmentService.Stats(middleware.AdminFromCtx(c))
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"by_status": stats})
}

func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid shipment id")
	}

	if err := h.shipmentService.Delete(id, middleware.AdminFromCtx(c)); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Shipment deleted"})
}

func parseShipmentFilter(c *fiber.Ctx) (repository.ShipmentFilter, error) {
	filter := repository.ShipmentFilter{
		Status:       model.ShipmentStatus(c.Query("status")),
		Priority:     model.ShipmentPriority(c.Query("priority")),
		ShipmentType: model.ShipmentType(c.Query("shipment_type")),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 10),
	}

	uuidFilters := map[string]**uuid.UUID{
		"warehouse_id":             &filter.WarehouseID,
		"destination_warehouse_id": &filter.DestinationWarehouseID,
		"carrier_id":               &filter.CarrierID,
		"supplier_id":              &filter.SupplierID,
	}
	for name, target := range uuidFilters {
		if raw := c.Query(name); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return filter, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" filter")
			}
			*target = &id
		}
	}

	dateFilters := map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	}
	for name, target := range dateFilters {
		if raw := c.Query(name); raw != "" {
			t, err := parseDate(raw)
			if err != nil {
				return filter, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" filter, use RFC3339 or YYYY-MM-DD")
			}
			*target = &t
		}
	}

	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
