package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/mcp"
)

// Handlers groups the REST handlers
type Handlers struct {
	Transactions *handler.TransactionHandler
	Users        *handler.UserHandler
	Health       *handler.HealthHandler
}

// MCPMount serves one MCP server at Path behind its own guards
type MCPMount struct {
	Path   string
	Server *mcp.Server
	Guards []gin.HandlerFunc
}

// SetupRoutes configures all the REST routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	// Transaction routes
	transactionRoutes := router.Group("/transactions")
	{
		// GET /transactions?type=&status=&currency=
		transactionRoutes.GET("", h.Transactions.ListTransactions)

		// GET /transactions/:id
		transactionRoutes.GET("/:id", h.Transactions.GetTransaction)
	}

	// User routes
	userRoutes := router.Group("/users")
	{
		userRoutes.GET("", h.Users.ListUsers)
		userRoutes.GET("/:id", h.Users.GetUser)
		userRoutes.GET("/:id/transactions", h.Users.ListUserTransactions)
		userRoutes.GET("/:id/balance", h.Users.GetBalance)
		userRoutes.GET("/:id/stats", h.Users.GetStatistics)
	}

	router.GET("/health", h.Health.Health)

	router.NoRoute(middleware.NotFound())
}

// SetupMetrics exposes the registry in the Prometheus text format
func SetupMetrics(router *gin.Engine, path string, gatherer prometheus.Gatherer) {
	router.GET(path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// SetupMCP mounts each MCP server's streamable HTTP transport behind its guards and a body size limit
func SetupMCP(router *gin.Engine, maxBodyBytes int64, mounts ...MCPMount) {
	for _, mount := range mounts {
		group := router.Group(mount.Path, mount.Guards...)
		transport := gin.WrapH(mount.Server.Handler())
		group.POST("", middleware.BodyLimit(maxBodyBytes), transport)
		group.GET("", transport)
		group.DELETE("", transport)
	}
}

// SetupMiddlewares configures global middlewares for the API; a nil httpMetrics skips instrumentation
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	allowedOrigins []string,
	httpMetrics *middleware.HTTPMetrics,
) {
	// Apply middlewares in the correct order
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS(allowedOrigins))
	if httpMetrics != nil {
		router.Use(httpMetrics.Handler(timeProvider))
	}
}
