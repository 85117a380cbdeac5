package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/api/dto"
	"github.com/spec-kit/rma-portal/internal/service"
)

// RMAHandler exposes stateless RMA number generation.
type RMAHandler struct {
	rma *service.RMAService
}

// NewRMAHandler constructs handler.
func NewRMAHandler(rma *service.RMAService) *RMAHandler {
	return &RMAHandler{rma: rma}
}

// Generate POST /api/rma-numbers.
func (h *RMAHandler) Generate(c *fiber.Ctx) error {
	number, err := h.rma.Generate(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RMANumberResponse{RMANumber: number}})
}
