package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// ActivityRepository is the append-only activity log store.
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityEntry) error
	List(ctx context.Context, limit, offset int) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (activity_type, user_type, description, entity_type, entity_id, metadata)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.ActivityType,
		entry.UserType,
		entry.Description,
		entry.EntityType,
		entry.EntityID,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) List(ctx context.Context, limit, offset int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, activity_type, user_type, description, entity_type, entity_id, metadata, created_at
        FROM activity_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ActivityType,
			&entry.UserType,
			&entry.Description,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
