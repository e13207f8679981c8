package handlers

// HandlerBundle aggregates every handler for route registration.
type HandlerBundle struct {
	Auth    *AuthHandler
	Event   *EventHandler
	Ride    *RideHandler
	Booking *BookingHandler
	Coupon  *CouponHandler
	Blog    *BlogHandler
	Storage *StorageHandler
}
