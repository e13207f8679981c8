package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NotificationService fans a booking confirmation out to every
// configured channel.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, msg BookingMessage) error
}

// DefaultNotificationService sends over email and WhatsApp. Either
// channel may be nil (credentials absent); a channel failure is logged
// and does not block the other.
type DefaultNotificationService struct {
	Email    *EmailSender
	WhatsApp *WhatsAppSender
	Logger   *zap.Logger
}

func NewDefaultNotificationService(logger *zap.Logger) *DefaultNotificationService {
	return &DefaultNotificationService{
		Email:    NewEmailSender(),
		WhatsApp: NewWhatsAppSender(),
		Logger:   logger,
	}
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, msg BookingMessage) error {
	if s.Email != nil {
		if err := s.Email.Send(msg); err != nil {
			s.Logger.Error("confirmation email failed",
				zap.String("booking_id", msg.BookingID),
				zap.Error(err),
			)
		}
	}
	if s.WhatsApp != nil {
		sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := s.WhatsApp.Send(sendCtx, msg); err != nil {
			s.Logger.Error("confirmation whatsapp failed",
				zap.String("booking_id", msg.BookingID),
				zap.Error(err),
			)
		}
	}
	// Notifications are best effort: the booking is already paid, so a
	// delivery failure never propagates to the caller.
	return nil
}
