package cron

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	syncSvc "torcal/services/sync"
	"torcal/utils"
)

// StartSyncWorker schedules the periodic calendar and rules resync and kicks
// off an immediate first run in the background. The schedule accepts
// standard cron expressions and the @every form.
func StartSyncWorker(svc *syncSvc.SyncService, schedule string) (*cron.Cron, error) {
	logger := utils.GetLogger()

	run := func() {
		if err := svc.SyncAll(context.Background()); err != nil {
			logger.Warn("scheduled sync run failed", zap.Error(err))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, run); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", schedule, err)
	}
	c.Start()

	// First population should not wait for the first tick.
	go run()

	logger.Info("sync worker started", zap.String("schedule", schedule))
	return c, nil
}
