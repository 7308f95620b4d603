package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	allocationUseCase "github.com/streetcare/pointpay/internal/domain/usecase/allocation"
	authUseCase "github.com/streetcare/pointpay/internal/domain/usecase/auth"
	transactionUseCase "github.com/streetcare/pointpay/internal/domain/usecase/transaction"

	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/handler"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/routes"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/kvstore"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/logger"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/qrcode"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/repository"
	"github.com/streetcare/pointpay/internal/infrastructure/auth"
	"github.com/streetcare/pointpay/internal/infrastructure/config"
	"github.com/streetcare/pointpay/internal/infrastructure/seed"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer appLogger.Flush()

	// Initialize time provider and ID generator
	tp := clock.NewPlatformTimeProvider()
	ids := qrcode.NewGenerator()

	// Connect to the key-value store
	rdb, err := kvstore.Connect(context.Background(), kvstore.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to key-value store", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = rdb.Close() }()

	// Initialize repositories
	beneficiaryRepo := repository.NewBeneficiaryRepository(rdb, tp, appLogger)
	storeRepo := repository.NewStoreRepository(rdb, tp, appLogger)
	productRepo := repository.NewProductRepository(rdb, tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(rdb, appLogger)
	allocationRepo := repository.NewAllocationRepository(rdb, appLogger)
	userRepo := repository.NewUserRepository(rdb, tp, appLogger)
	associationRepo := repository.NewAssociationRepository(rdb, tp, appLogger)
	configRepo := repository.NewConfigRepository(rdb, appLogger)
	lockRepo := repository.NewLockRepository(rdb, appLogger)

	// Auth primitives
	passwords := auth.NewBcryptHasher()
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, tp)

	// Initialize use cases
	lockTTL := cfg.Transaction.LockTimeoutSeconds

	transactionService := transactionUseCase.NewService(
		beneficiaryRepo,
		storeRepo,
		productRepo,
		transactionRepo,
		lockRepo,
		ids,
		tp,
		appLogger,
		lockTTL,
	)

	allocationService := allocationUseCase.NewService(
		beneficiaryRepo,
		allocationRepo,
		configRepo,
		lockRepo,
		ids,
		tp,
		appLogger,
		lockTTL,
	)

	authService := authUseCase.NewService(userRepo, tokens, passwords, tp, appLogger)

	// Seed the default admin account and limit settings
	seeder := seed.New(userRepo, configRepo, passwords, ids, tp, appLogger)
	if err := seeder.Run(context.Background(), cfg.Auth.SeedAdminUser, cfg.Auth.SeedAdminPass); err != nil {
		appLogger.Error("Failed to seed default records", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize API handlers
	handlers := routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, appLogger),
		Transaction: handler.NewTransactionHandler(transactionService, transactionRepo, appLogger),
		Allocation:  handler.NewAllocationHandler(allocationService, allocationRepo, appLogger),
		Beneficiary: handler.NewBeneficiaryHandler(beneficiaryRepo, ids, tp, appLogger),
		Store:       handler.NewStoreHandler(storeRepo, ids, tp, appLogger),
		Product:     handler.NewProductHandler(productRepo, storeRepo, ids, tp, appLogger),
		User:        handler.NewUserHandler(userRepo, passwords, ids, tp, appLogger),
		Association: handler.NewAssociationHandler(associationRepo, storeRepo, ids, tp, appLogger),
		Config:      handler.NewConfigHandler(configRepo, tp, appLogger),
		Report:      handler.NewReportHandler(transactionRepo, allocationRepo, appLogger),
		Health:      handler.NewHealthHandler(rdb, appLogger),
	}

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, handlers, tokens, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate key-value store configuration
	if cfg.Redis.Addr == "" {
		if cfg.Environment == config.Production && os.Getenv("PP_REDIS_ADDR") == "" {
			missingConfigs = append(missingConfigs, "redis.addr (or PP_REDIS_ADDR environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "redis.addr")
		}
	}

	// Validate auth configuration; the token secret must never default
	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or PP_AUTH_JWT_SECRET environment variable)")
	}

	if cfg.Auth.TokenExpiry == 0 {
		missingConfigs = append(missingConfigs, "auth.tokenExpiryHours")
	}

	// Validate transaction configuration
	if cfg.Transaction.LockTimeoutSeconds == 0 {
		missingConfigs = append(missingConfigs, "transaction.lockTimeoutSeconds")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		if len(cfg.Auth.JWTSecret) < 32 {
			warnings = append(warnings, "auth.jwtSecret should be at least 32 bytes in production")
		}

		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
