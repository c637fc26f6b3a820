package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/bonus"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/generation"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/pricing"
	userUseCase "github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/user"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/handler"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/routes"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/database"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/database/migration"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/logger"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/repository"
	timeProvider "github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/time"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	conn, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			appLogger.Error("Failed to close database connection", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if err := migration.SeedPricing(conn.DB, appLogger); err != nil {
		appLogger.Error("Failed to seed pricing data", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)
	pricingRepo := repository.NewPricingRepository(conn.DB, appLogger)
	settingsRepo := repository.NewUserSettingsRepository(conn.DB, tp, appLogger)

	calculator := pricing.NewCalculator(pricingRepo, appLogger)
	ledgerService := ledger.NewService(uow, calculator, tp, appLogger)
	userService := userUseCase.NewService(uow, ledgerService, tp, appLogger)
	bonusService := bonus.NewService(ledgerService, settingsRepo, tp, appLogger)
	generationService := generation.NewService(uow, ledgerService, calculator, tp, appLogger)

	userHandler := handler.NewUserHandler(userService, ledgerService, bonusService, appLogger)
	paymentHandler := handler.NewPaymentHandler(ledgerService, appLogger)
	generationHandler := handler.NewGenerationHandler(generationService, userService, uow, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, userHandler, paymentHandler, generationHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if err := appLogger.Flush(); err != nil {
		log.Printf("Failed to flush logs: %v", err)
	}
	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missing = append(missing, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missing = append(missing, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}
	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or NB_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or NB_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missing = append(missing, "database.password (or NB_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or NB_DB_NAME environment variable)")
	}
	if cfg.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}
	return nil
}
