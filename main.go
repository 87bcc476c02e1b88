package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/config"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/database"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/handlers"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/model"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/processors"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/services"
)

func main() {
	cfg := config.LoadConfig()
	logger.InitLogger(cfg.LogLevel)

	logger.L.Info("Tariff Impact backend server starting...", "env", cfg.AppEnv)

	logger.L.Info("Initializing database...", "path", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.L.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.L.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	var sharedRates processors.RateCache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err := services.NewRedisRateCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.L.Warn("Redis rate cache unavailable, using in-process cache only", "error", err)
		} else {
			defer redisCache.Close()
			sharedRates = redisCache
			logger.L.Info("Redis rate cache enabled", "addr", cfg.RedisAddr)
		}
	}

	countryStore := model.NewCountryStore(db)
	productStore := model.NewProductStore(db)
	calculationStore := model.NewCalculationStore(db)

	forexProvider := processors.NewExchangeRateProvider(cfg.ForexAPIBaseURL, cfg.ForexTimeout, cfg.ForexCacheTTL, sharedRates)
	calculator := processors.NewLandedCostCalculator(countryStore, productStore, forexProvider, cfg.ForexTimeout)
	calculationService := services.NewCalculationService(calculator, calculationStore)

	router := handlers.NewRouter(handlers.RouterConfig{
		Calculator:         handlers.NewCalculatorHandler(calculationService, cfg.IsProduction()),
		Calculations:       handlers.NewCalculationHandler(calculationService, cfg.IsProduction()),
		Reference:          handlers.NewReferenceHandler(countryStore, productStore),
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		MaxBodyBytes:       cfg.MaxBodyBytes,
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stdlog.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.L.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.L.Error("Graceful shutdown failed", "error", err)
	}
}
