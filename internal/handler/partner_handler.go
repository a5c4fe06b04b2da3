package handler

import (
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PartnerHandler struct {
	service service.CatalogService
}

func NewPartnerHandler(s service.CatalogService) *PartnerHandler {
	return &PartnerHandler{service: s}
}

func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var partner model.Partner
	if err := c.BodyParser(&partner); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreatePartner(&partner); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Partner created", "data": partner})
}

// List partners, query "role" untuk filter dan "search" untuk cari
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	role := model.PartnerRole(c.Query("role"))
	partners, err := h.service.GetPartners(role, c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(partners)
}

func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	partner, err := h.service.GetPartner(uint(id))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(partner)
}

func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	var partner model.Partner
	if err := c.BodyParser(&partner); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdatePartner(uint(id), &partner)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Partner updated", "data": updated})
}

func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	if err := h.service.DeletePartner(uint(id)); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Partner deleted"})
}
