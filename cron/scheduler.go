package cron

import (
	"context"
	"time"

	"motoclub/services/migration"
	"motoclub/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitMigrationScheduler schedules the ride migration sweep hourly plus
// a midnight catch-up run, mirroring the cadence riders expect: a ride
// disappears from the upcoming list within the hour of ending.
func InitMigrationScheduler(sweeper *migration.Sweeper) *cron.Cron {
	logger := utils.GetLogger()
	c := cron.New()

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		report, err := sweeper.Run(ctx)
		if err != nil {
			logger.Error("migration sweep failed", zap.Error(err))
			return
		}
		if report.Checked > 0 {
			logger.Info("migration sweep",
				zap.Int("checked", report.Checked),
				zap.Int("migrated", report.Migrated),
				zap.Int("errors", len(report.Errors)),
			)
		}
	}

	if _, err := c.AddFunc("0 * * * *", run); err != nil {
		logger.Fatal("schedule hourly migration sweep", zap.Error(err))
	}
	if _, err := c.AddFunc("0 0 * * *", run); err != nil {
		logger.Fatal("schedule midnight migration sweep", zap.Error(err))
	}

	c.Start()
	logger.Info("migration scheduler started")
	return c
}
