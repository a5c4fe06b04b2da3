package handler

import (
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WarehouseHandler struct {
	service service.CatalogService
}

func NewWarehouseHandler(s service.CatalogService) *WarehouseHandler {
	return &WarehouseHandler{service: s}
}

func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var warehouse model.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateWarehouse(&warehouse); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Warehouse created", "data": warehouse})
}

func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	warehouses, err := h.service.GetWarehouses()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(warehouses)
}

func (h *WarehouseHandler) Get(c *fiber.Ctx) error {
	warehouse, err := h.service.GetWarehouse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(warehouse)
}

// GetStocks: stok per produk di gudang ini
func (h *WarehouseHandler) GetStocks(c *fiber.Ctx) error {
	stocks, err := h.service.GetWarehouseStocks(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stocks)
}

func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var warehouse model.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateWarehouse(c.Params("id"), &warehouse)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Warehouse updated", "data": updated})
}

func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteWarehouse(c.Params("id")); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Warehouse deleted"})
}
