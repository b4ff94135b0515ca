package jobs

import (
	"eurekastreams-backend/internal/config"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	notifications service.NotificationService
	config        *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(notifications service.NotificationService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		notifications: notifications,
		config:        cfg,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.PurgeInAppNotifications()
}
