package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"

	"sakay/internal/app"
	"sakay/internal/config"
	"sakay/internal/handler"
	internalRedis "sakay/internal/redis"
	"sakay/internal/repository/memory"
	"sakay/internal/service"
)

func main() {
	// Load .env if present, then configuration.
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST so Redis can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, fleet := wireServer(redisClient, nrApp, cfg)

	// Run the fleet simulator until shutdown.
	fleetCtx, fleetCancel := context.WithCancel(context.Background())
	defer fleetCancel()
	if fleet != nil {
		go fleet.Run(fleetCtx)
		log.Println("Fleet simulator started")
	}

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	fleetCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// fleet simulator (nil when disabled).
func wireServer(redisClient *goredis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *service.FleetSimulator) {
	// Initialize Redis stores.
	positionStore := internalRedis.NewPositionStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := memory.NewUserRepository()
	partnerRepo := memory.NewPartnerRepository()
	rideRepo := memory.NewRideRepository()

	// Initialize services.
	notificationService := service.NewNotificationService()
	receiptService := service.NewReceiptService(notificationService)
	fareCalculator := service.NewFareCalculator(service.DefaultFareConfig())
	ledger := service.NewLedger(userRepo, partnerRepo, rideRepo)
	lifecycle := service.NewLifecycleService(
		rideRepo, userRepo, partnerRepo,
		fareCalculator, ledger, lockStore,
		receiptService, notificationService,
	)
	accountService := service.NewAccountService(userRepo, partnerRepo, positionStore, cacheStore)
	gateway := service.NewMockGateway()
	walletService := service.NewWalletService(gateway, ledger)

	// Seed the demo environment.
	seeder := app.NewSeeder(userRepo, partnerRepo, rideRepo, ledger, positionStore, cacheStore)
	if cfg.Demo.Seed {
		if err := seeder.Seed(context.Background()); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("Demo data seeded")
	}

	// Initialize handlers.
	userHandler := handler.NewUserHandler(accountService, userRepo)
	partnerHandler := handler.NewPartnerHandler(accountService, ledger, partnerRepo)
	rideHandler := handler.NewRideHandler(lifecycle, rideRepo)
	walletHandler := handler.NewWalletHandler(walletService)
	fleetHandler := handler.NewFleetHandler(positionStore, accountService)
	adminHandler := handler.NewAdminHandler(accountService, ledger, seeder)

	router := app.NewRouter(app.RouterDeps{
		RideHandler:    rideHandler,
		UserHandler:    userHandler,
		PartnerHandler: partnerHandler,
		WalletHandler:  walletHandler,
		FleetHandler:   fleetHandler,
		AdminHandler:   adminHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var fleet *service.FleetSimulator
	if cfg.Fleet.Enabled {
		fleet = service.NewFleetSimulator(service.FleetConfig{
			TickInterval:  cfg.Fleet.TickInterval,
			StepDegrees:   cfg.Fleet.StepDegrees,
			JitterDegrees: cfg.Fleet.JitterDegrees,
		}, partnerRepo, rideRepo, positionStore)
	}

	return server, fleet
}
