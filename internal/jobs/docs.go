// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order pipeline.
//
// # Available Jobs
//
// 1. PrescriptionReminderJob - Runs hourly to surface prescriptions that have been pending review too long
// 2. CapacitySnapshotJob - Runs every minute to publish delivery window load to the metrics registry
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(pendingHandler, capacityHandler, maxAge, engineMetrics, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs log failures and carry on; a failed tick never stops the schedule
// - Failed job starts will stop any already running jobs
package jobs
