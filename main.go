// File: rentora/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentora/config"
	"rentora/cron"
	"rentora/database"
	balanceRepo "rentora/database/repository/balance"
	bookingRepo "rentora/database/repository/booking"
	couponRepo "rentora/database/repository/coupon"
	intervalRepo "rentora/database/repository/interval"
	listingRepo "rentora/database/repository/listing"
	"rentora/handlers"
	"rentora/middleware"
	"rentora/routes"
	"rentora/services/booking"
	"rentora/services/coupon"
	"rentora/services/notification"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	intervals := intervalRepo.NewMongoIntervalRepo()
	balances := balanceRepo.NewMongoBalanceRepo()
	listings := listingRepo.NewMongoListingRepo()
	coupons := couponRepo.NewMongoCouponRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	for _, ensure := range []func(context.Context) error{
		bookings.EnsureIndexes,
		intervals.EnsureIndexes,
		balances.EnsureIndexes,
		listings.EnsureIndexes,
		coupons.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Alert queue client (fire-and-forget, consumed by the worker in cron/).
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	alerts := notification.NewAsynqPublisher(asynqClient)

	// services.
	couponService := &coupon.DefaultCouponService{
		Coupons:  coupons,
		Bookings: bookings,
		Txn:      database.RunTransaction,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:                 bookings,
		Intervals:                intervals,
		Balances:                 balances,
		Listings:                 listings,
		Coupons:                  couponService,
		Alerts:                   alerts,
		Cache:                    utils.GetCacheClient(),
		Txn:                      database.RunTransaction,
		MaxActiveBookingsPerUser: int64(config.AppConfig.MaxActiveBookingsPerUser),
		CooldownSeconds:          config.AppConfig.BookingCooldownSeconds,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	couponHandler := handlers.NewCouponHandler(couponService, logger)

	routes.RegisterRoutes(router, bookingHandler, couponHandler)

	// Background workers.
	cron.InitAlertWorker()
	reconciler := cron.StartCouponReconciler(couponService)
	defer reconciler.Stop()

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
