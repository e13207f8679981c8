package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motoclub/config"
	"motoclub/cron"
	"motoclub/database"
	blogRepoPkg "motoclub/database/repository/blog"
	bookingRepoPkg "motoclub/database/repository/booking"
	couponRepoPkg "motoclub/database/repository/coupon"
	eventRepoPkg "motoclub/database/repository/event"
	rideRepoPkg "motoclub/database/repository/ride"
	userRepoPkg "motoclub/database/repository/user"
	"motoclub/handlers"
	"motoclub/middleware"
	"motoclub/models"
	"motoclub/routes"
	"motoclub/services/booking"
	"motoclub/services/coupon"
	"motoclub/services/migration"
	"motoclub/services/notification"
	"motoclub/services/payment"
	"motoclub/services/storage"
	"motoclub/services/user"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitOTPCache()

	var storageService storage.StorageService
	if svc, err := storage.NewCloudinaryStorageService(); err != nil {
		logger.Sugar().Warnf("main: storage service disabled: %v", err)
	} else {
		storageService = svc
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	rideRepo := rideRepoPkg.NewMongoRideRepo()
	eventRepo := eventRepoPkg.NewMongoEventRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	couponRepo := couponRepoPkg.NewMongoCouponRepo()
	blogRepo := blogRepoPkg.NewMongoBlogRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		rideRepo.EnsureIndexes,
		eventRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		couponRepo.EnsureIndexes,
		blogRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	mailer := notification.NewEmailSender()
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Mailer: mailer,
		Logger: logger,
	}

	couponService := &coupon.DefaultCouponService{
		Repo:   couponRepo,
		Logger: logger,
	}

	dispatcher := notification.NewAsynqDispatcher(cron.QueueRedisOpt(), logger)
	defer dispatcher.Close()

	bookingService := &booking.DefaultBookingService{
		Repo: bookingRepo,
		Offerings: map[models.OfferingKind]booking.OfferingRepo{
			models.OfferingRide:  rideRepo,
			models.OfferingEvent: eventRepo,
		},
		Gateway:           payment.NewRazorpayGateway(logger),
		Coupons:           couponService,
		Notifier:          dispatcher,
		Logger:            logger,
		CancelCutoffHours: config.AppConfig.CancelCutoffHours,
	}

	sweeper := &migration.Sweeper{
		Rides:    rideRepo,
		Bookings: bookingRepo,
		Logger:   logger,
	}

	// Background workers: confirmation sender and migration schedule.
	cron.InitNotificationWorker(notification.NewDefaultNotificationService(logger))
	scheduler := cron.InitMigrationScheduler(sweeper)
	defer scheduler.Stop()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService),
		Event:   handlers.NewEventHandler(eventRepo),
		Ride:    handlers.NewRideHandler(rideRepo, sweeper),
		Booking: handlers.NewBookingHandler(bookingService),
		Coupon:  handlers.NewCouponHandler(couponService, couponRepo),
		Blog:    handlers.NewBlogHandler(blogRepo),
		Storage: handlers.NewStorageHandler(storageService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
