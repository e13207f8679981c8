package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"motoclub/models"
	"motoclub/services/booking"

	"github.com/gin-gonic/gin"
)

type stubBookingService struct {
	createErr error
}

func (s *stubBookingService) CreateOrder(ctx context.Context, kind models.OfferingKind, offeringID string, req booking.CreateOrderRequest) (*booking.OrderResponse, error) {
	return nil, s.createErr
}

func (s *stubBookingService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) SetStatus(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListByOffering(ctx context.Context, offeringID string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) RegisterAudience(ctx context.Context, eventID, name, email, phone string, seats int) (*models.AudienceRegistration, error) {
	return nil, nil
}

func (s *stubBookingService) SetRegistrationStatus(ctx context.Context, regID string, to models.BookingStatus) (*models.AudienceRegistration, error) {
	return nil, nil
}

func (s *stubBookingService) ListRegistrations(ctx context.Context, eventID string) ([]models.AudienceRegistration, error) {
	return nil, nil
}

func postRideOrder(h *BookingHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/rides/:id/book", func(c *gin.Context) {
		c.Set("userID", "user-1")
		h.CreateRideOrder(c)
	})

	body := `{"attendee":{"name":"A","email":"a@example.com","phone":"+911234567890"},"booking_type":"individual"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rides/ride-1/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "fully booked", err: booking.ErrFullyBooked, want: http.StatusBadRequest},
		{name: "offering closed", err: booking.ErrOfferingClosed, want: http.StatusBadRequest},
		{name: "duplicate booking", err: booking.ErrDuplicateBooking, want: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBookingHandler(&stubBookingService{createErr: tt.err})
			w := postRideOrder(h)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
