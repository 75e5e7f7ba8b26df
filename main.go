// File: carematch/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carematch/config"
	"carematch/cron"
	"carematch/database"
	availabilityRepo "carematch/database/repository/availability"
	occurrenceRepo "carematch/database/repository/occurrence"
	offerRepo "carematch/database/repository/offer"
	providerRepo "carematch/database/repository/provider"
	requestRepo "carematch/database/repository/request"
	"carematch/handlers"
	"carematch/middleware"
	"carematch/models"
	"carematch/routes"
	"carematch/services/dispatch"
	"carematch/services/notification"
	"carematch/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("timewindow", func(fl validator.FieldLevel) bool {
		return models.TimeWindow(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("recurrence", func(fl validator.FieldLevel) bool {
		return models.RecurrencePattern(fl.Field().String()).Valid()
	})
}

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
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())
	registerValidations()

	// repositories.
	reqRepo := requestRepo.NewMongoRequestRepo()
	provRepo := providerRepo.NewMongoProviderRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	offRepo := offerRepo.NewMongoOfferRepo()
	occRepo := occurrenceRepo.NewMongoOccurrenceRepo()

	for _, ensure := range []func() error{
		reqRepo.EnsureIndexes,
		provRepo.EnsureIndexes,
		availRepo.EnsureIndexes,
		offRepo.EnsureIndexes,
		occRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	dispatchService := &dispatch.DefaultDispatchService{
		Requests:     reqRepo,
		Providers:    provRepo,
		Availability: availRepo,
		Offers:       offRepo,
		Occurrences:  occRepo,
	}

	notificationService := &notification.DefaultNotificationService{
		Providers: provRepo,
		Mailer:    notification.NewMailerFromConfig(),
	}
	cron.InitDispatchWorker(notificationService)
	notifier := notification.NewDispatcher()

	// handlers.
	dispatchHandler := handlers.NewDispatchHandler(dispatchService, utils.GetCacheClient(), notifier, logger)
	requestHandler := handlers.NewRequestHandler(reqRepo, offRepo, logger)
	providerHandler := handlers.NewProviderHandler(provRepo, availRepo, logger)

	routes.RegisterRoutes(router, dispatchHandler, requestHandler, providerHandler)

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
