package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"torcal/config"
	cronWorker "torcal/cron"
	bookingRepoPkg "torcal/database/repository/booking"
	catalogRepo "torcal/database/repository/catalog"
	rulesRepo "torcal/database/repository/rules"
	timeslotRepo "torcal/database/repository/timeslot"
	"torcal/handlers"
	"torcal/middleware"
	"torcal/routes"
	"torcal/services/availability"
	"torcal/services/booking"
	syncSvc "torcal/services/sync"
	"torcal/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: config.Origins(),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	// repositories.
	slotRepo := timeslotRepo.NewMemoryTimeslotRepo()
	bkRepo := bookingRepoPkg.NewMemoryBookingRepo()
	ruleRepo := rulesRepo.NewMemoryRuleRepo()
	typeCatalog := catalogRepo.NewMemoryMeetingTypeRepo()

	// Google clients; absent credentials run the system on sample data.
	var calendarClient syncSvc.CalendarClient
	var sheetClient syncSvc.SheetClient
	if creds := config.AppConfig.GoogleCredentialsFile; creds != "" {
		ctx := context.Background()
		var err error
		calendarClient, err = syncSvc.NewGoogleCalendarClient(ctx, creds)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize calendar client: %v", err)
		}
		if config.AppConfig.SpreadsheetID != "" {
			sheetClient, err = syncSvc.NewGoogleSheetClient(ctx, creds)
			if err != nil {
				logger.Sugar().Fatalf("main: failed to initialize sheets client: %v", err)
			}
		}
	} else {
		logger.Sugar().Warn("main: no Google credentials configured, running on sample data")
	}

	// services.
	syncService := &syncSvc.SyncService{
		Calendar:      calendarClient,
		Sheets:        sheetClient,
		Timeslots:     slotRepo,
		Rules:         ruleRepo,
		Catalog:       typeCatalog,
		CalendarID:    config.AppConfig.CalendarID,
		SpreadsheetID: config.AppConfig.SpreadsheetID,
		SheetName:     config.AppConfig.SheetName,
		WindowDays:    config.AppConfig.SyncWindowDays,
		Timeout:       config.SyncTimeout(),
	}

	engine := availability.NewEngine(ruleRepo)

	bookingService := &booking.DefaultBookingService{
		Timeslots: slotRepo,
		Bookings:  bkRepo,
		Engine:    engine,
		Mirror:    syncService,
	}

	timeslotHandler := handlers.NewTimeslotHandler(
		slotRepo, engine,
		config.AppConfig.GroupThreshold,
		config.AppConfig.SyncWindowDays,
	)
	clientDataHandler := handlers.NewClientDataHandler(ruleRepo, typeCatalog, engine)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	syncHandler := handlers.NewSyncHandler(syncService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetTimeslotsHandler:        timeslotHandler.GetTimeslotsHandler,
		GetDisplayTimeslotsHandler: timeslotHandler.GetDisplayTimeslotsHandler,
		GetClientDataHandler:       clientDataHandler.GetClientDataHandler,
		GetMeetingTypesHandler:     clientDataHandler.GetMeetingTypesHandler,
		CreateBookingHandler:       bookingHandler.CreateBookingHandler,
		GetBookingHandler:          bookingHandler.GetBookingHandler,
		TriggerSyncHandler:         syncHandler.TriggerSyncHandler,
		HealthHandler:              syncHandler.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the periodic resync worker.
	syncWorker, err := cronWorker.StartSyncWorker(syncService, config.AppConfig.SyncSchedule)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start sync worker: %v", err)
	}

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

	syncWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
