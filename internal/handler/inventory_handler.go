package handler

import (
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InventoryHandler serves products, sub-products and items.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.inventoryService.CreateProduct(&product); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created",
		"product": product,
	})
}

func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.inventoryService.ListProducts()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid product id")
	}

	product, err := h.inventoryService.GetProduct(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid product id")
	}

	var updates model.Product
	if err := c.BodyParser(&updates); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	product, err := h.inventoryService.UpdateProduct(id, &updates)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated",
		"product": product,
	})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid product id")
	}

	if err := h.inventoryService.DeleteProduct(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) CreateSubProduct(c *fiber.Ctx) error {
	var subProduct model.SubProduct
	if err := c.BodyParser(&subProduct); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.inventoryService.CreateSubProduct(&subProduct); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Sub-product created",
		"sub_product": subProduct,
	})
}

func (h *InventoryHandler) ListSubProducts(c *fiber.Ctx) error {
	subProducts, err := h.inventoryService.ListSubProducts()
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(subProducts)
}

func (h *InventoryHandler) GetSubProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid sub-product id")
	}

	subProduct, err := h.inventoryService.GetSubProduct(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(subProduct)
}

func (h *InventoryHandler) UpdateSubProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid sub-product id")
	}

	var updates model.SubProduct
	if err := c.BodyParser(&updates); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	subProduct, err := h.inventoryService.UpdateSubProduct(id, &updates)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Sub-product updated",
		"sub_product": subProduct,
	})
}

func (h *InventoryHandler) DeleteSubProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid sub-product id")
	}

	if err := h.inventoryService.DeleteSubProduct(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sub-product deleted"})
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	if err := h.inventoryService.CreateItem(&item); err != nil {
		return failFromErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item created",
		"item":    item,
	})
}

// ListItems supports ?warehouse_id= (resolved through the section graph) and
// ?section_id= filters. section_id wins when both are present.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var warehouseID, sectionID *uuid.UUID

	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, catValidation, "invalid warehouse_id filter")
		}
		warehouseID = &id
	}
	if raw := c.Query("section_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, catValidation, "invalid section_id filter")
		}
		sectionID = &id
	}

	items, err := h.inventoryService.ListItems(warehouseID, sectionID)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid item id")
	}

	item, err := h.inventoryService.GetItem(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid item id")
	}

	var req service.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid JSON body")
	}

	item, err := h.inventoryService.UpdateItem(id, &req)
	if err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Item updated",
		"item":    item,
	})
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, catValidation, "invalid item id")
	}

	if err := h.inventoryService.DeleteItem(id); err != nil {
		return failFromErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
