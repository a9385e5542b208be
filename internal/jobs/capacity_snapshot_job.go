package jobs

import (
	"context"
	"log/slog"

	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// CapacitySnapshotJob refreshes the slot capacity gauge once a minute so
// dashboards see window load without hitting the API.
type CapacitySnapshotJob struct {
	handler       queries.GetCapacityQueryHandler
	engineMetrics *metrics.EngineMetrics
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewCapacitySnapshotJob creates a job that publishes capacity figures to
// the metrics registry.
func NewCapacitySnapshotJob(
	handler queries.GetCapacityQueryHandler,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) *CapacitySnapshotJob {
	return &CapacitySnapshotJob{
		handler:       handler,
		engineMetrics: engineMetrics,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "capacity_snapshot_job"),
	}
}

// Start begins the snapshot job, running at the top of every minute.
func (j *CapacitySnapshotJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetCapacityQuery()

		slots, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Capacity snapshot job failed", "error", err)
			return
		}

		// Reset so windows that emptied since the last run drop off.
		j.engineMetrics.SlotCapacity.Reset()
		for _, slot := range slots {
			j.engineMetrics.SlotCapacity.
				WithLabelValues(slot.Window, slot.Driver).
				Set(float64(slot.CapacityPercent))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity snapshot job started (running every minute)")
	return nil
}

// Stop stops the snapshot job.
func (j *CapacitySnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Capacity snapshot job stopped")
}
