package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/api/dto"
	"github.com/spec-kit/rma-portal/internal/service"
	apperrors "github.com/spec-kit/rma-portal/pkg/util"
)

// CustomersHandler exposes customer-number validation.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// Validate GET /api/customers/:number/validate. Unknown numbers answer
// valid=false rather than 404.
func (h *CustomersHandler) Validate(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return apperrors.NewValidationError("customer number required", nil)
	}
	valid, err := h.customers.Validate(c.UserContext(), number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CustomerValidationResponse{
		CustomerNumber: number,
		Valid:          valid,
	}})
}
