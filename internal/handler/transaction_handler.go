package handler

import (
	"errors"
	"fmt"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// validateRequest jalan SEBELUM orchestrator: field wajib yang hilang tidak
// boleh sampai menyentuh unit of work
func validateRequest(c *fiber.Ctx, data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		})
	}
	return nil
}

// statusForError memetakan taksonomi error service ke HTTP status
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrWarehouseNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrBatchNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return 404
	case errors.Is(err, service.ErrProductNotInWarehouse),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInsufficientBatchQuantity):
		return 400
	default:
		return 500
	}
}

// Purchase mencatat pembelian: batch baru + stok naik, satu unit of work
func (h *TransactionHandler) Purchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.service.PurchaseProduct(&req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":        result.Message,
		"transaction_id": result.TransactionID,
		"batch":          result.Batch,
		"updated_stock":  result.UpdatedStock,
	})
}

// CreateSale mencatat penjualan multi-item dengan depletion batch FIFO
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.service.CreateSaleTransaction(&req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"message":        result.Message,
			"transaction_id": result.TransactionID,
			"total_amount":   result.TotalAmount,
			"item_count":     result.ItemCount,
		},
	})
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	txType := model.TransactionType(c.Query("type"))
	if txType != "" && txType != model.TxSale && txType != model.TxPurchase {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid type, expected 'sale' or 'purchase'"})
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	list, err := h.service.GetAllTransactions(txType, page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(list)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(id)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tx)
}
