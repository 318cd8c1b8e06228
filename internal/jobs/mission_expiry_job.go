package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// missionExpiryGrace is how long a pickup mission may sit in Pending past
// its scheduled time before the sweep cancels it.
const missionExpiryGrace = 24 * time.Hour

// MissionExpiryJob sweeps pickup missions nobody accepted in time. Runs
// hourly, cancelling overdue missions and releasing their parcels back to
// the pending pool.
type MissionExpiryJob struct {
	handler commands.ExpireOverduePickupMissionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewMissionExpiryJob creates the hourly expiry sweep.
func NewMissionExpiryJob(
	handler commands.ExpireOverduePickupMissionsCommandHandler,
	logger *slog.Logger,
) *MissionExpiryJob {
	return &MissionExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "mission_expiry_job"),
	}
}

// Start schedules the sweep at the top of every hour.
func (j *MissionExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Mission expiry job started (running hourly)")
	return nil
}

// Stop stops the expiry sweep.
func (j *MissionExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Mission expiry job stopped")
}

func (j *MissionExpiryJob) runOnce() {
	ctx := context.Background()

	cmd, err := commands.NewExpireOverduePickupMissionsCommand(time.Now().Add(-missionExpiryGrace))
	if err != nil {
		j.logger.ErrorContext(ctx, "Mission expiry command construction failed", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Mission expiry sweep failed", "error", err)
		return
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired overdue pickup missions", "count", expired)
	}
}
