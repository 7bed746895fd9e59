package handler

import (
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler serves suppliers, carriers and employees.
type DirectoryHandler struct {
	directoryService service.DirectoryService
}

func NewDirectoryHandler(directoryService service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

func (h *DirectoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.directoryService.CreateSupplier(&supplier); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Supplier created",
		"supplier": supplier,
	})
}

func (h *DirectoryHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.directoryService.ListSuppliers()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(suppliers)
}

func (h *DirectoryHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid supplier id")
	}

	supplier, err := h.directoryService.GetSupplier(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(supplier)
}

func (h *DirectoryHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid supplier id")
	}

	var updates model.Supplier
	if err := c.BodyParser(&updates); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	supplier, err := h.directoryService.UpdateSupplier(id, &updates)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Supplier updated",
		"supplier": supplier,
	})
}

func (h *DirectoryHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid supplier id")
	}

	if err := h.directoryService.DeleteSupplier(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}

func (h *DirectoryHandler) CreateCarrier(c *fiber.Ctx) error {
	var carrier model.Carrier
	if err := c.BodyParser(&carrier); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.directoryService.CreateCarrier(&carrier); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Carrier created",
		"carrier": carrier,
	})
}

func (h *DirectoryHandler) ListCarriers(c *fiber.Ctx) error {
	carriers, err := h.directoryService.ListCarriers()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(carriers)
}

func (h *DirectoryHandler) GetCarrier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid carrier id")
	}

	carrier, err := h.directoryService.GetCarrier(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(carrier)
}

func (h *DirectoryHandler) UpdateCarrier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid carrier id")
	}

	var updates model.Carrier
	if err := c.BodyParser(&updates); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	carrier, err := h.directoryService.UpdateCarrier(id, &updates)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Carrier updated",
		"carrier": carrier,
	})
}

func (h *DirectoryHandler) DeleteCarrier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid carrier id")
	}

	if err := h.directoryService.DeleteCarrier(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Carrier deleted"})
}

func (h *DirectoryHandler) CreateEmployee(c *fiber.Ctx) error {
	var employee model.Employee
	if err := c.BodyParser(&employee); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.directoryService.CreateEmployee(&employee); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Employee created",
		"employee": employee,
	})
}

func (h *DirectoryHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.directoryService.ListEmployees()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(employees)
}

func (h *DirectoryHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid employee id")
	}

	employee, err := h.directoryService.GetEmployee(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(employee)
}

func (h *DirectoryHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid employee id")
	}

	var updates model.Employee
	if err := c.BodyParser(&updates); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	employee, err := h.directoryService.UpdateEmployee(id, &updates)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Employee updated",
		"employee": employee,
	})
}

func (h *DirectoryHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid employee id")
	}

	if err := h.directoryService.DeleteEmployee(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
