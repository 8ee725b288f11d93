package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investmetic/investmetic/internal/platform/httpx"
)

// RepositoryPort defines data access for strategies.
type RepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*Strategy, error)
	AdjustSubscriberCount(ctx context.Context, tx pgx.Tx, id int64, delta int) error
}

// Repository provides PostgreSQL backed persistence for strategies.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*Strategy, error) {
	var s Strategy
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, subscriber_count, created_at, updated_at
		FROM strategies WHERE id = $1`, id).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.SubscriberCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find strategy: %w", err)
	}
	return &s, nil
}

// AdjustSubscriberCount shifts the cached subscriber counter. The count
// never goes below zero.
func (r *Repository) AdjustSubscriberCount(ctx context.Context, tx pgx.Tx, id int64, delta int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE strategies
		SET subscriber_count = GREATEST(subscriber_count + $2, 0), updated_at = NOW()
		WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("adjust subscriber count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
