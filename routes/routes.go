package routes

import (
	"net/http"
	"time"

	"motoclub/handlers"
	"motoclub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, verification and account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/verify-email", hb.Auth.VerifyEmail)
		api.POST("/resend-otp", hb.Auth.ResendOTP)
		api.POST("/login", hb.Auth.Login)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.Auth.Me)
		api.PUT("/me", hb.Auth.UpdateProfile)
		api.PUT("/me/password", hb.Auth.ChangePassword)
	}
}

// RegisterRideRoutes registers the public ride catalogue and booking entry.
func RegisterRideRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rides")
	{
		api.GET("", hb.Ride.ListUpcoming)
		api.GET("/completed", hb.Ride.ListCompleted)
		api.GET("/completed/:id", hb.Ride.GetCompleted)
		api.GET("/:slug", hb.Ride.GetBySlug)

		api.POST("/:id/book", middleware.JWTAuthMiddleware(), hb.Booking.CreateRideOrder)
	}
}

// RegisterEventRoutes registers the public event catalogue, booking entry
// and audience registration.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("", hb.Event.List)
		api.GET("/:slug", hb.Event.GetBySlug)

		api.POST("/:id/book", middleware.JWTAuthMiddleware(), hb.Booking.CreateEventOrder)
		// Spectator registration needs no account.
		api.POST("/:id/audience", hb.Booking.RegisterAudience)
	}
}

// RegisterBookingRoutes registers the payment callback and member booking
// management.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// The payment callback authenticates itself through the gateway
		// signature, not a bearer token.
		api.POST("/verify", hb.Booking.VerifyPayment)

		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.Booking.MyBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.POST("/:id/cancel", hb.Booking.Cancel)
	}
}

// RegisterCouponRoutes registers the public discount preview.
func RegisterCouponRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/coupons")
	{
		api.POST("/preview", middleware.JWTAuthMiddleware(), hb.Coupon.Preview)
	}
}

// RegisterBlogRoutes registers the public blog reads.
func RegisterBlogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/blogs")
	{
		api.GET("", hb.Blog.List)
		api.GET("/:slug", hb.Blog.GetBySlug)
	}
}

// RegisterAdminRoutes sets up endpoints for back-office operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/users", hb.Auth.ListUsers)
		admin.DELETE("/users/:id", hb.Auth.DeleteUser)

		admin.POST("/rides", hb.Ride.Create)
		admin.PUT("/rides/:id", hb.Ride.Update)
		admin.DELETE("/rides/:id", hb.Ride.Delete)
		admin.POST("/rides/migrate", hb.Ride.TriggerMigration)
		admin.GET("/rides/:id/bookings", hb.Booking.ListByOffering)

		admin.POST("/events", hb.Event.Create)
		admin.PUT("/events/:id", hb.Event.Update)
		admin.DELETE("/events/:id", hb.Event.Delete)
		admin.GET("/events/:id/bookings", hb.Booking.ListByOffering)
		admin.GET("/events/:id/audience", hb.Booking.ListRegistrations)

		admin.PUT("/bookings/:id/status", hb.Booking.SetStatus)
		admin.PUT("/registrations/:id/status", hb.Booking.SetRegistrationStatus)

		admin.GET("/coupons", hb.Coupon.List)
		admin.POST("/coupons", hb.Coupon.Create)
		admin.PUT("/coupons/:code", hb.Coupon.Update)
		admin.DELETE("/coupons/:id", hb.Coupon.Delete)

		admin.POST("/blogs", hb.Blog.Create)
		admin.PUT("/blogs/:id", hb.Blog.Update)
		admin.DELETE("/blogs/:id", hb.Blog.Delete)

		admin.POST("/uploads/:folder", hb.Storage.Upload)
		admin.DELETE("/uploads", hb.Storage.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterRideRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCouponRoutes(r, hb)
	RegisterBlogRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
