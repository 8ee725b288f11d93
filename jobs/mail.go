package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/investmetic/investmetic/internal/email"
	jobmetrics "github.com/investmetic/investmetic/internal/jobs"
)

// MailJob delivers queued transactional mail through the configured sender.
type MailJob struct {
	Sender  email.Sender
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewMailJob wires dependencies for the mail handler.
func NewMailJob(sender email.Sender, logger *slog.Logger, metrics *jobmetrics.Metrics) *MailJob {
	return &MailJob{Sender: sender, Logger: logger, Metrics: metrics}
}

// Handle processes TaskTypeSendEmail tasks.
func (j *MailJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.Metrics.Track("mail_send")

	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		j.Logger.Error("malformed mail payload", slog.Any("error", err))
		_ = tracker.End(err)
		return asynq.SkipRetry
	}

	if err := j.Sender.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		j.Logger.Error("send mail",
			slog.String("to", payload.To),
			slog.Any("error", err))
		j.Metrics.AddMail("failure")
		return tracker.End(err)
	}
	j.Metrics.AddMail("success")
	return tracker.End(nil)
}
