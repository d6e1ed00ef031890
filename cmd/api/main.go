package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	transactionUseCase "github.com/amirhossein-jamali/finquery/internal/domain/usecase/transaction"
	userUseCase "github.com/amirhossein-jamali/finquery/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/mcp"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/config"
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
	appLogger, err := logger.NewZapLogger(cfg.Environment == config.Production)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Every collector lands on one registry served at the metrics path
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Connect to the database
	dbManager := database.NewManager(database.NewConfigFromAppConfig(cfg), appLogger, tp, registry)
	if _, err := dbManager.Connect(context.Background()); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(context.Background()); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Demo data is provisioning only; the service itself never writes
	if cfg.Seed.DemoData {
		if err := migration.NewDemoSeeder(dbManager.DB(), appLogger, tp).Seed(context.Background()); err != nil {
			appLogger.Error("Failed to seed demo data", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Initialize repositories
	storeMetrics := database.NewMetricsCollector(appLogger, tp, registry, time.Duration(cfg.Database.SlowQueryMs)*time.Millisecond)
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger, storeMetrics)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger, storeMetrics)

	// Initialize use cases
	userUseCaseImpl := userUseCase.NewUserUseCase(userRepo, transactionRepo, tp, appLogger).
		WithQueryTimeout(cfg.Database.QueryTimeout)
	transactionUseCaseImpl := transactionUseCase.NewTransactionUseCase(transactionRepo, tp, appLogger).
		WithQueryTimeout(cfg.Database.QueryTimeout)

	// Initialize MCP servers
	mcpDeps := mcp.Dependencies{
		Users:        userUseCaseImpl,
		Transactions: transactionUseCaseImpl,
		Reference:    config.DefaultReferenceData(),
		SearchLimit:  cfg.MCP.SearchLimit,
		Stateless:    cfg.MCP.Stateless,
		Heartbeat:    time.Duration(cfg.MCP.HeartbeatSeconds) * time.Second,
		Logger:       appLogger,
		Metrics:      mcp.NewCallMetrics(registry),
	}
	warriorServer, err := mcp.NewWarriorServer(mcpDeps)
	if err != nil {
		appLogger.Error("Failed to build MCP server", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var mcpGuards []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		// An unreachable Redis at startup still yields a limiter; it fails open until Redis comes back
		client := middleware.NewRedisClient(context.Background(), cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB, appLogger)
		defer func() { _ = client.Close() }()
		limiter := middleware.NewRateLimiter(middleware.NewRedisWindowCounter(client), cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, appLogger, registry)
		mcpGuards = append(mcpGuards, limiter.Handler())
	}

	mounts := []routes.MCPMount{{Path: cfg.MCP.PublicPath, Server: warriorServer, Guards: mcpGuards}}
	if cfg.MCP.Admin.JWTSecret != "" {
		adminServer, err := mcp.NewAdminServer(mcpDeps)
		if err != nil {
			appLogger.Error("Failed to build MCP admin server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		adminGuards := append([]gin.HandlerFunc{middleware.JWTAuth(cfg.MCP.Admin.JWTSecret, cfg.MCP.Admin.Issuer, appLogger)}, mcpGuards...)
		mounts = append(mounts, routes.MCPMount{Path: cfg.MCP.AdminPath, Server: adminServer, Guards: adminGuards})
	} else {
		appLogger.Info("MCP admin server disabled, no JWT secret configured", nil)
	}

	// Initialize API handlers
	handlers := routes.Handlers{
		Transactions: handler.NewTransactionHandler(transactionUseCaseImpl, appLogger),
		Users:        handler.NewUserHandler(userUseCaseImpl, appLogger),
		Health:       handler.NewHealthHandler(dbManager, appLogger),
	}

	// Initialize Gin router
	router := gin.New()

	var httpMetrics *middleware.HTTPMetrics
	if cfg.Metrics.Enabled {
		httpMetrics = middleware.NewHTTPMetrics(registry)
	}

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, tp, cfg.Server.AllowedOrigins, httpMetrics)

	// Setup routes
	routes.SetupRoutes(router, handlers)
	routes.SetupMCP(router, cfg.MCP.MaxBodyBytes, mounts...)
	if cfg.Metrics.Enabled {
		routes.SetupMetrics(router, cfg.Metrics.Path, registry)
	}

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
			"addr":       server.Addr,
			"env":        cfg.Environment,
			"mcp_public": cfg.MCP.PublicPath,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration; in production the connection comes from the environment
	requireDB := func(value, key, envName string) {
		if value != "" {
			return
		}
		if cfg.Environment == config.Production {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", key, envName))
			return
		}
		missingConfigs = append(missingConfigs, key)
	}
	requireDB(cfg.Database.Host, "database.host", "FQ_DB_HOST")
	requireDB(cfg.Database.Port, "database.port", "FQ_DB_PORT")
	requireDB(cfg.Database.Username, "database.username", "FQ_DB_USERNAME")
	requireDB(cfg.Database.Password, "database.password", "FQ_DB_PASSWORD")
	requireDB(cfg.Database.Database, "database.database", "FQ_DB_NAME")

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate MCP configuration
	if cfg.MCP.SearchLimit <= 0 {
		missingConfigs = append(missingConfigs, "mcp.searchLimit")
	}

	if cfg.MCP.PublicPath == "" {
		missingConfigs = append(missingConfigs, "mcp.publicPath")
	}

	if cfg.MCP.MaxBodyBytes <= 0 {
		missingConfigs = append(missingConfigs, "mcp.maxBodyBytes")
	}

	if cfg.MCP.Admin.JWTSecret != "" && cfg.MCP.AdminPath == "" {
		missingConfigs = append(missingConfigs, "mcp.adminPath")
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.RedisAddr == "" || cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.Window <= 0) {
		missingConfigs = append(missingConfigs, "rateLimit.redisAddr, rateLimit.maxRequests and rateLimit.windowSeconds")
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

		// Check database security settings
		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(cfg.MCP.Admin.JWTSecret) > 0 && len(cfg.MCP.Admin.JWTSecret) < 32 {
			warnings = append(warnings, "mcp.admin.jwtSecret should be at least 32 bytes")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
