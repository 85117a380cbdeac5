package service

import (
	"context"
	"strings"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/repository"
)

// CustomerService validates customer numbers against the directory.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Validate reports whether the customer number exists and is active.
// Unknown numbers yield valid=false, never an error.
func (s *CustomerService) Validate(ctx context.Context, customerNumber string) (bool, error) {
	customerNumber = strings.TrimSpace(customerNumber)
	if customerNumber == "" {
		return false, nil
	}
	customer, err := s.customers.GetByNumber(ctx, customerNumber)
	if err != nil {
		return false, err
	}
	return customer != nil && customer.IsActive, nil
}

// Lookup returns the directory record for a customer number, nil if unknown.
func (s *CustomerService) Lookup(ctx context.Context, customerNumber string) (*domain.Customer, error) {
	return s.customers.GetByNumber(ctx, strings.TrimSpace(customerNumber))
}
