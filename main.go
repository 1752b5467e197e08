package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growthquest/config"
	"growthquest/cron"
	"growthquest/database/repository"
	"growthquest/handlers"
	"growthquest/middleware"
	"growthquest/monitoring"
	"growthquest/routes"
	"growthquest/services/checkout"
	"growthquest/services/concierge"
	"growthquest/services/holdsession"
	"growthquest/services/inventory"
	"growthquest/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitConciergeCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Catalog and repositories.
	catalog := repository.NewFixtureCatalog()
	bookingRepo := repository.NewInMemoryBookingRepo()

	// Core services.
	clock := holdsession.SystemClock{}
	inventoryStore := inventory.NewStore(repository.FixtureCohorts())
	sessionManager := holdsession.NewManager(inventoryStore, clock, config.AppConfig.HoldDuration)

	resolver := &checkout.DefaultResolver{
		Inventory: inventoryStore,
		Sessions:  sessionManager,
		Bookings:  bookingRepo,
		Catalog:   catalog,
		Clock:     clock,
		Scheduler: cron.NewAsynqExpiryScheduler(),
	}

	classifier := &concierge.Classifier{Catalog: catalog}
	ctxStore := concierge.NewRedisContextStore(utils.GetConciergeCacheClient(), 30*time.Minute)
	conciergeSvc := concierge.NewDefaultService(ctxStore, resolver, classifier)

	// Handlers.
	checkoutHandler := handlers.NewCheckoutHandler(resolver, logger)
	catalogHandler := handlers.NewCatalogHandler(catalog, inventoryStore)
	conciergeHandler := handlers.NewConciergeHandler(conciergeSvc)

	handlerBundle := &handlers.HandlerBundle{
		// Catalog endpoints.
		ListOfferings: catalogHandler.ListOfferings,
		GetOffering:   catalogHandler.GetOffering,
		ListCohorts:   catalogHandler.ListCohorts,

		// Checkout endpoints.
		Hold:          checkoutHandler.Hold,
		Confirm:       checkoutHandler.Confirm,
		Cancel:        checkoutHandler.Cancel,
		Remaining:     checkoutHandler.Remaining,
		JoinWaitlist:  checkoutHandler.JoinWaitlist,
		SuggestBundle: checkoutHandler.SuggestBundle,
		ListBookings:  checkoutHandler.ListBookings,

		// Concierge endpoints.
		ConciergeMessage: conciergeHandler.HandleMessage,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background work: expiry worker, sweep, metrics, health.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cron.InitExpiryWorker(resolver)
	cron.StartExpirySweeper(ctx, sessionManager, clock, config.AppConfig.SweepInterval)
	monitoring.NewMonitor(inventoryStore)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetConciergeCacheClient()})

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
