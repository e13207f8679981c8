package notification

import (
	"encoding/json"

	"motoclub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeBookingConfirmed is the asynq task type for confirmation sends.
const TypeBookingConfirmed = "booking:confirmed"

// AsynqDispatcher queues confirmation tasks for the background worker.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqDispatcher(opt asynq.RedisClientOpt, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{
		Client: asynq.NewClient(opt),
		Logger: logger,
	}
}

func (d *AsynqDispatcher) BookingConfirmed(b models.Booking, offeringTitle string) {
	msg := BookingMessage{
		BookingID:     b.ID,
		OfferingTitle: offeringTitle,
		Name:          b.Attendee.Name,
		Email:         b.Attendee.Email,
		Phone:         b.Attendee.Phone,
		Seats:         b.Seats,
		Amount:        b.Amount,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		d.Logger.Error("marshal confirmation task", zap.String("booking_id", b.ID), zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeBookingConfirmed, payload)
	info, err := d.Client.Enqueue(task, asynq.MaxRetry(5), asynq.Queue("default"))
	if err != nil {
		d.Logger.Error("enqueue confirmation task", zap.String("booking_id", b.ID), zap.Error(err))
		return
	}
	d.Logger.Info("confirmation task queued",
		zap.String("booking_id", b.ID),
		zap.String("task_id", info.ID),
	)
}

func (d *AsynqDispatcher) RegistrationConfirmed(reg models.AudienceRegistration, eventTitle string) {
	msg := BookingMessage{
		BookingID:     reg.ID,
		OfferingTitle: eventTitle,
		Name:          reg.Name,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Seats:         reg.Seats,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		d.Logger.Error("marshal confirmation task", zap.String("registration_id", reg.ID), zap.Error(err))
		return
	}
	if _, err := d.Client.Enqueue(asynq.NewTask(TypeBookingConfirmed, payload), asynq.MaxRetry(5), asynq.Queue("default")); err != nil {
		d.Logger.Error("enqueue confirmation task", zap.String("registration_id", reg.ID), zap.Error(err))
	}
}

func (d *AsynqDispatcher) Close() error {
	return d.Client.Close()
}
