package handlers

import (
	"errors"
	"net/http"

	blogRepo "motoclub/database/repository/blog"
	bookingRepo "motoclub/database/repository/booking"
	couponRepo "motoclub/database/repository/coupon"
	eventRepo "motoclub/database/repository/event"
	rideRepo "motoclub/database/repository/ride"
	userRepo "motoclub/database/repository/user"
	"motoclub/services/booking"
	"motoclub/services/coupon"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates domain errors into the API envelope.
// Anything unrecognized falls through to RespondError (500).
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrDuplicateBooking):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrFullyBooked),
		errors.Is(err, booking.ErrOfferingClosed),
		errors.Is(err, booking.ErrCancelTooLate),
		errors.Is(err, booking.ErrNotCancellable),
		errors.Is(err, booking.ErrNotPayable),
		errors.Is(err, booking.ErrSignatureMismatch):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, coupon.ErrInactive),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, coupon.ErrUsageLimit),
		errors.Is(err, coupon.ErrNotApplicable),
		errors.Is(err, coupon.ErrGroupSize),
		errors.Is(err, coupon.ErrMinOrder):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, rideRepo.ErrNotFound),
		errors.Is(err, eventRepo.ErrNotFound),
		errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, couponRepo.ErrNotFound),
		errors.Is(err, blogRepo.ErrNotFound),
		errors.Is(err, userRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	default:
		utils.RespondError(c, err)
	}
}
