package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// ErrorTypeRepository reads the error-type catalog.
type ErrorTypeRepository interface {
	ListActive(ctx context.Context) ([]domain.ErrorType, error)
	GetByID(ctx context.Context, id string) (*domain.ErrorType, error)
}

type errorTypeRepository struct {
	pool *pgxpool.Pool
}

// NewErrorTypeRepository instantiates repository.
func NewErrorTypeRepository(pool *pgxpool.Pool) ErrorTypeRepository {
	return &errorTypeRepository{pool: pool}
}

const errorTypeColumns = `id, title, description, category, icon, video_url, instructions,
       sub_options, troubleshooting_steps, is_active, sort_order, created_at`

func (r *errorTypeRepository) ListActive(ctx context.Context) ([]domain.ErrorType, error) {
	query := `SELECT ` + errorTypeColumns + `
        FROM error_types WHERE is_active ORDER BY sort_order, title`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ErrorType
	for rows.Next() {
		var et domain.ErrorType
		if err := rows.Scan(
			&et.ID,
			&et.Title,
			&et.Description,
			&et.Category,
			&et.Icon,
			&et.VideoURL,
			&et.Instructions,
			&et.SubOptions,
			&et.TroubleshootingSteps,
			&et.IsActive,
			&et.SortOrder,
			&et.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, et)
	}
	return result, rows.Err()
}

func (r *errorTypeRepository) GetByID(ctx context.Context, id string) (*domain.ErrorType, error) {
	query := `SELECT ` + errorTypeColumns + ` FROM error_types WHERE id=$1`
	var et domain.ErrorType
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&et.ID,
		&et.Title,
		&et.Description,
		&et.Category,
		&et.Icon,
		&et.VideoURL,
		&et.Instructions,
		&et.SubOptions,
		&et.TroubleshootingSteps,
		&et.IsActive,
		&et.SortOrder,
		&et.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &et, nil
}
