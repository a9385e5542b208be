package jobs

import (
	"context"
	"log/slog"
	"time"

	"pharmacy/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// PrescriptionReminderJob nudges the pharmacist queue about prescriptions
// that have been waiting for review longer than maxAge. Orders gated on
// those prescriptions cannot move until somebody looks at them.
type PrescriptionReminderJob struct {
	handler queries.GetPendingPrescriptionsQueryHandler
	maxAge  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPrescriptionReminderJob creates a job that checks the pending queue
// every hour.
func NewPrescriptionReminderJob(
	handler queries.GetPendingPrescriptionsQueryHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *PrescriptionReminderJob {
	return &PrescriptionReminderJob{
		handler: handler,
		maxAge:  maxAge,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "prescription_reminder_job"),
	}
}

// Start begins the reminder job, running at the top of every hour.
func (j *PrescriptionReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetPendingPrescriptionsQuery()

		pending, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Prescription reminder job failed", "error", err)
			return
		}

		cutoff := time.Now().Add(-j.maxAge)
		overdue := 0
		for _, p := range pending {
			if p.UploadedAt.After(cutoff) {
				continue
			}
			overdue++
			j.logger.WarnContext(ctx, "Prescription awaiting review",
				"prescription_id", p.ID.String(),
				"uploaded_at", p.UploadedAt,
				"waiting", time.Since(p.UploadedAt).Round(time.Minute).String(),
			)
		}

		if overdue > 0 {
			j.logger.InfoContext(ctx, "Prescription reminder summary",
				"overdue", overdue, "pending_total", len(pending))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Prescription reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *PrescriptionReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Prescription reminder job stopped")
}
