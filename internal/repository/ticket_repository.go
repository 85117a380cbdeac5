package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// TicketRepository encapsulates RMA ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByRMANumber(ctx context.Context, rmaNumber string) (*domain.Ticket, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Ticket, error)
	ListArchived(ctx context.Context, limit, offset int) ([]domain.Ticket, error)
	// ArchiveOlderThan transitions every active ticket created before cutoff
	// to archived in a single set-based statement and returns how many rows
	// changed. The status predicate makes repeated runs idempotent.
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	ExistsRMANumber(ctx context.Context, rmaNumber string) (bool, error)
	CountByStatus(ctx context.Context) (domain.StatusCounts, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, rma_number, customer_number, selection, shipping_method,
       use_default_address, return_address, contact_person, status, created_at, archived_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (rma_number, customer_number, selection, shipping_method, use_default_address, return_address, contact_person, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.RMANumber,
		ticket.CustomerNumber,
		ticket.Selection,
		ticket.ShippingMethod,
		ticket.UseDefaultAddress,
		ticket.ReturnAddress,
		ticket.ContactPerson,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) GetByRMANumber(ctx context.Context, rmaNumber string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE rma_number=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, rmaNumber).Scan(
		&ticket.ID,
		&ticket.RMANumber,
		&ticket.CustomerNumber,
		&ticket.Selection,
		&ticket.ShippingMethod,
		&ticket.UseDefaultAddress,
		&ticket.ReturnAddress,
		&ticket.ContactPerson,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.ArchivedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	return r.listByStatus(ctx, domain.TicketStatusActive, limit, offset)
}

func (r *ticketRepository) ListArchived(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	return r.listByStatus(ctx, domain.TicketStatusArchived, limit, offset)
}

func (r *ticketRepository) listByStatus(ctx context.Context, status domain.TicketStatus, limit, offset int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + ticketColumns + `
        FROM tickets WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `
        UPDATE tickets SET status=$1, archived_at=NOW()
        WHERE status=$2 AND created_at < $3`
	cmd, err := r.pool.Exec(ctx, query, domain.TicketStatusArchived, domain.TicketStatusActive, cutoff)
	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}

func (r *ticketRepository) ExistsRMANumber(ctx context.Context, rmaNumber string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM tickets WHERE rma_number=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, rmaNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE status=$1),
            COUNT(*) FILTER (WHERE status=$2)
        FROM tickets`
	var counts domain.StatusCounts
	if err := r.pool.QueryRow(ctx, query, domain.TicketStatusActive, domain.TicketStatusArchived).
		Scan(&counts.Active, &counts.Archived); err != nil {
		return domain.StatusCounts{}, err
	}
	return counts, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.RMANumber,
			&ticket.CustomerNumber,
			&ticket.Selection,
			&ticket.ShippingMethod,
			&ticket.UseDefaultAddress,
			&ticket.ReturnAddress,
			&ticket.ContactPerson,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.ArchivedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
