package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// CustomerRepository looks up records in the customer directory.
type CustomerRepository interface {
	// GetByNumber returns nil, nil for unknown numbers: absence is a
	// validation outcome here, not an error.
	GetByNumber(ctx context.Context, customerNumber string) (*domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) GetByNumber(ctx context.Context, customerNumber string) (*domain.Customer, error) {
	const query = `
        SELECT id, customer_number, name, default_address, is_active, created_at
        FROM customers WHERE customer_number=$1`
	var customer domain.Customer
	err := r.pool.QueryRow(ctx, query, customerNumber).Scan(
		&customer.ID,
		&customer.CustomerNumber,
		&customer.Name,
		&customer.DefaultAddress,
		&customer.IsActive,
		&customer.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
