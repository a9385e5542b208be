package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	prescriptionReminderJob *PrescriptionReminderJob
	capacitySnapshotJob     *CapacitySnapshotJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	pendingPrescriptionsHandler queries.GetPendingPrescriptionsQueryHandler,
	capacityHandler queries.GetCapacityQueryHandler,
	reminderMaxAge time.Duration,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		prescriptionReminderJob: NewPrescriptionReminderJob(pendingPrescriptionsHandler, reminderMaxAge, logger),
		capacitySnapshotJob:     NewCapacitySnapshotJob(capacityHandler, engineMetrics, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.prescriptionReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start prescription reminder job: %w", err)
	}

	if err := jm.capacitySnapshotJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.prescriptionReminderJob.Stop()
		return fmt.Errorf("failed to start capacity snapshot job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.capacitySnapshotJob.Stop()
	jm.prescriptionReminderJob.Stop()
}
