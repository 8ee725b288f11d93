package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/investmetic/investmetic/internal/jobs"
)

// SubscriptionDigestJob records a nightly snapshot of subscriber counts per
// strategy so growth can be tracked over time.
type SubscriptionDigestJob struct {
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewSubscriptionDigestJob wires dependencies for the digest handler.
func NewSubscriptionDigestJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *SubscriptionDigestJob {
	return &SubscriptionDigestJob{Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle processes TaskTypeSubscriptionDigest tasks.
func (j *SubscriptionDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.Metrics.Track("subscription_digest")
	return tracker.End(j.run(ctx))
}

func (j *SubscriptionDigestJob) run(ctx context.Context) error {
	tag, err := j.Pool.Exec(ctx, `
		INSERT INTO subscription_snapshots (strategy_id, subscriber_count, taken_at)
		SELECT id, subscriber_count, now()
		FROM strategies
		WHERE subscriber_count > 0`)
	if err != nil {
		return fmt.Errorf("snapshot subscriber counts: %w", err)
	}

	var strategies, subscribers int64
	err = j.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(subscriber_count), 0)
		FROM strategies WHERE subscriber_count > 0`).
		Scan(&strategies, &subscribers)
	if err != nil {
		return fmt.Errorf("summarize subscriptions: %w", err)
	}

	j.Logger.Info("subscription digest",
		slog.Int64("snapshots", tag.RowsAffected()),
		slog.Int64("strategies", strategies),
		slog.Int64("subscribers", subscribers))
	return nil
}
