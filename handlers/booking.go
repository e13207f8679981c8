package handlers

import (
	"net/http"

	"motoclub/middleware"
	"motoclub/models"
	"motoclub/services/booking"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler drives the booking lifecycle endpoints for both rides
// and events, plus event audience registrations.
type BookingHandler struct {
	Svc booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

type createOrderRequest struct {
	Attendee    models.Attendee `json:"attendee" binding:"required"`
	BookingType string          `json:"booking_type" binding:"required,oneof=individual group"`
	GroupSize   int             `json:"group_size"`
	CouponCode  string          `json:"coupon_code"`
}

func (h *BookingHandler) createOrder(c *gin.Context, kind models.OfferingKind) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.Svc.CreateOrder(c.Request.Context(), kind, c.Param("id"), booking.CreateOrderRequest{
		UserID:      middleware.UserID(c),
		Attendee:    req.Attendee,
		BookingType: req.BookingType,
		GroupSize:   req.GroupSize,
		CouponCode:  req.CouponCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, resp, "Order created, complete payment to confirm")
}

func (h *BookingHandler) CreateRideOrder(c *gin.Context) {
	h.createOrder(c, models.OfferingRide)
}

func (h *BookingHandler) CreateEventOrder(c *gin.Context) {
	h.createOrder(c, models.OfferingEvent)
}

// VerifyPayment is the gateway callback target. The three fields mirror
// the checkout response sent to the frontend.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	var req struct {
		OrderID   string `json:"razorpay_order_id" binding:"required"`
		PaymentID string `json:"razorpay_payment_id" binding:"required"`
		Signature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.Svc.VerifyPayment(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b, "Payment verified, booking confirmed")
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b, "Booking cancelled")
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	bs, err := h.Svc.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bs, "")
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if b.UserID != middleware.UserID(c) {
		role, _ := c.Get("role")
		if role != models.RoleAdmin {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
	}
	utils.JSONSuccess(c, http.StatusOK, b, "")
}

// ListByOffering is the admin participant list for one ride or event.
func (h *BookingHandler) ListByOffering(c *gin.Context) {
	bs, err := h.Svc.ListByOffering(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bs, "")
}

// SetStatus is the admin status override.
func (h *BookingHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required,oneof=created paid failed cancelled refunded"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b, "Booking status updated")
}

// RegisterAudience creates a pending spectator registration. Public, no
// account required.
func (h *BookingHandler) RegisterAudience(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone" binding:"required"`
		Seats int    `json:"seats"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	reg, err := h.Svc.RegisterAudience(c.Request.Context(), c.Param("id"), req.Name, req.Email, req.Phone, req.Seats)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reg, "Registration received")
}

func (h *BookingHandler) ListRegistrations(c *gin.Context) {
	regs, err := h.Svc.ListRegistrations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, regs, "")
}

func (h *BookingHandler) SetRegistrationStatus(c *gin.Context) {
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required,oneof=pending confirmed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	reg, err := h.Svc.SetRegistrationStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reg, "Registration status updated")
}
