package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investmetic/investmetic/internal/platform/db"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/strategy"
)

// Item is one row of an investor's subscription listing.
type Item struct {
	StrategyID      int64
	StrategyName    string
	SubscriberCount int
	SubscribedAt    time.Time
}

// RepositoryPort defines data access for subscriptions.
type RepositoryPort interface {
	Toggle(ctx context.Context, strategyID, userID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, page shared.PageRequest) ([]Item, int, error)
}

type repository struct {
	pool       *pgxpool.Pool
	strategies strategy.RepositoryPort
}

// NewRepository builds the pgx-backed subscription store.
func NewRepository(pool *pgxpool.Pool, strategies strategy.RepositoryPort) RepositoryPort {
	return &repository{pool: pool, strategies: strategies}
}

// Toggle flips the subscription state and keeps the strategy's cached
// counter in step, in one transaction. Returns the resulting state.
func (r *repository) Toggle(ctx context.Context, strategyID, userID int64) (bool, error) {
	var subscribed bool
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM subscriptions WHERE strategy_id = $1 AND user_id = $2`,
			strategyID, userID)
		if err != nil {
			return fmt.Errorf("delete subscription: %w", err)
		}
		if tag.RowsAffected() > 0 {
			subscribed = false
			return r.strategies.AdjustSubscriberCount(ctx, tx, strategyID, -1)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO subscriptions (strategy_id, user_id) VALUES ($1, $2)`,
			strategyID, userID); err != nil {
			return fmt.Errorf("insert subscription: %w", err)
		}
		subscribed = true
		return r.strategies.AdjustSubscriberCount(ctx, tx, strategyID, 1)
	})
	if err != nil {
		return false, err
	}
	return subscribed, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64, page shared.PageRequest) ([]Item, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, s.subscriber_count, sub.created_at
		FROM subscriptions sub
		JOIN strategies s ON s.id = sub.strategy_id
		WHERE sub.user_id = $1
		ORDER BY sub.created_at DESC, sub.id DESC
		LIMIT $2 OFFSET $3`,
		userID, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select subscriptions: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.StrategyID, &it.StrategyName, &it.SubscriberCount, &it.SubscribedAt); err != nil {
			return nil, 0, fmt.Errorf("scan subscription: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return items, total, nil
}
