package cron

import (
	"context"
	"encoding/json"
	"time"

	"motoclub/config"
	"motoclub/services/notification"
	"motoclub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the client and worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the async worker in background.
func InitNotificationWorker(notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingConfirmed, handleBookingConfirmed(notifSvc, logger))

	go func() {
		logger.Info("starting notification worker")
		err := retryWithBackoff(5, time.Sleep, func() error {
			return srv.Run(mux)
		})
		if err != nil {
			// The worker is an optional integration like SMTP or
			// WhatsApp: the API keeps serving, confirmations stay queued
			// until Redis comes back and the process is restarted.
			logger.Error("notification worker unavailable, confirmations will not be delivered",
				zap.Error(err),
			)
		}
	}()
}

// retryWithBackoff runs fn up to maxAttempts times with a linearly
// growing pause between attempts, returning the last error.
func retryWithBackoff(maxAttempts int, pause func(time.Duration), fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < maxAttempts {
			pause(time.Duration(attempt*2) * time.Second)
		}
	}
	return err
}

func handleBookingConfirmed(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg notification.BookingMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			logger.Error("invalid confirmation payload", zap.Error(err))
			return err
		}
		logger.Info("sending booking confirmation",
			zap.String("booking_id", msg.BookingID),
			zap.String("offering", msg.OfferingTitle),
		)
		return notifSvc.SendBookingConfirmation(ctx, msg)
	}
}
