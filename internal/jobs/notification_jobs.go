package jobs

import (
	"context"

	"eurekastreams-backend/internal/logger"
)

// PurgeInAppNotifications deletes in-app notifications older than the configured retention
func (jr *JobRunner) PurgeInAppNotifications() {
	jr.runWithRecovery("PurgeInAppNotifications", func() {
		ctx := context.Background()

		purged, err := jr.notifications.PurgeExpired(ctx, jr.config.InAppRetention())
		if err != nil {
			logger.Error("Failed to purge in-app notifications", "error", err)
			return
		}

		logger.Info("In-app notifications purged", "count", purged)
	})
}
