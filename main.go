// File: agendly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendly/config"
	"agendly/cron"
	"agendly/database"
	appointmentRepo "agendly/database/repository/appointment"
	catalogRepo "agendly/database/repository/catalog"
	unitRepo "agendly/database/repository/unit"
	"agendly/handlers"
	"agendly/middleware"
	"agendly/routes"
	"agendly/services/booking"
	"agendly/services/notification"
	"agendly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	units := unitRepo.NewMongoUnitRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()

	if repo, ok := appointments.(*appointmentRepo.MongoAppointmentRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
		}
	}

	// notification pipeline.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	dispatcher, err := notification.NewAsynqDispatcher(asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification dispatcher: %v", err)
	}
	cron.InitNotificationWorker(notification.LogSender{})

	// services.
	engine := &booking.AvailabilityEngine{
		Units:          units,
		Catalog:        catalog,
		Appointments:   appointments,
		Cache:          utils.GetCacheClient(),
		GranularityMin: config.AppConfig.SlotGranularityMin,
		CacheTTL:       time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}
	bookingService := &booking.DefaultBookingService{
		Engine:       engine,
		Appointments: appointments,
		Notifier:     dispatcher,
	}

	handlers.BookingService = bookingService
	handlers.UnitRepo = units

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	routes.RegisterRoutes(router)

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
