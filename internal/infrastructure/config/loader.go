package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "FQ"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// stringOverrides maps environment variables onto config keys
var stringOverrides = map[string]string{
	"FQ_DB_HOST":              "database.host",
	"FQ_DB_PORT":              "database.port",
	"FQ_DB_USERNAME":          "database.username",
	"FQ_DB_PASSWORD":          "database.password",
	"FQ_DB_NAME":              "database.database",
	"FQ_DB_SSL_MODE":          "database.sslMode",
	"FQ_SERVER_HOST":          "server.host",
	"FQ_LOGGER_LEVEL":         "logger.level",
	"FQ_LOGGER_FORMAT":        "logger.format",
	"FQ_MCP_ADMIN_JWT_SECRET": "mcp.admin.jwtSecret",
	"FQ_MCP_ADMIN_ISSUER":     "mcp.admin.issuer",
	"FQ_REDIS_ADDR":           "rateLimit.redisAddr",
	"FQ_REDIS_PASSWORD":       "rateLimit.redisPassword",
}

// intOverrides maps environment variables onto numeric config keys; unparsable values are ignored
var intOverrides = map[string]string{
	"FQ_SERVER_PORT":                  "server.port",
	"FQ_DB_MAX_OPEN_CONNS":            "database.maxOpenConns",
	"FQ_DB_MAX_IDLE_CONNS":            "database.maxIdleConns",
	"FQ_DB_QUERY_TIMEOUT_SECONDS":     "database.queryTimeout",
	"FQ_DB_RETRY_ATTEMPTS":            "database.retryAttempts",
	"FQ_DB_SLOW_QUERY_MS":             "database.slowQueryMs",
	"FQ_MCP_SEARCH_LIMIT":             "mcp.searchLimit",
	"FQ_MCP_MAX_BODY_BYTES":           "mcp.maxBodyBytes",
	"FQ_MCP_HEARTBEAT_SECONDS":        "mcp.heartbeatSeconds",
	"FQ_RATE_LIMIT_MAX_REQUESTS":      "rateLimit.maxRequests",
	"FQ_RATE_LIMIT_WINDOW_SECONDS":    "rateLimit.windowSeconds",
	"FQ_REDIS_DB":                     "rateLimit.redisDB",
	"FQ_DB_CONN_MAX_LIFETIME_MINUTES": "database.connMaxLifetime",
}

// boolOverrides maps environment variables onto boolean config keys
var boolOverrides = map[string]string{
	"FQ_RATE_LIMIT_ENABLED": "rateLimit.enabled",
	"FQ_METRICS_ENABLED":    "metrics.enabled",
	"FQ_SEED_DEMO_DATA":     "seed.demoData",
	"FQ_MCP_STATELESS":      "mcp.stateless",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = loadDotEnvFile()

	return loadFrom(getEnvironment(), ConfigPaths)
}

func loadFrom(env string, paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first readable .env file in the search paths
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.slowQueryMs", 200)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("mcp.searchLimit", 10)
	v.SetDefault("mcp.stateless", false)
	v.SetDefault("mcp.maxBodyBytes", 1<<20)
	v.SetDefault("mcp.heartbeatSeconds", 0)
	v.SetDefault("mcp.publicPath", "/mcp/warrior")
	v.SetDefault("mcp.adminPath", "/mcp/admin")
	v.SetDefault("mcp.admin.issuer", "finquery")

	v.SetDefault("rateLimit.enabled", false)
	v.SetDefault("rateLimit.redisAddr", "localhost:6379")
	v.SetDefault("rateLimit.redisDB", 0)
	v.SetDefault("rateLimit.maxRequests", 60)
	v.SetDefault("rateLimit.windowSeconds", 60)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("seed.demoData", false)
}

// getEnvironment determines the environment from FQ_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
func processEnvOverrides(v *viper.Viper) {
	for name, key := range stringOverrides {
		if value := os.Getenv(name); value != "" {
			v.Set(key, value)
		}
	}
	for name, key := range intOverrides {
		if value, ok := getEnvInt(name); ok {
			v.Set(key, value)
		}
	}
	for name, key := range boolOverrides {
		if value, err := strconv.ParseBool(os.Getenv(name)); err == nil {
			v.Set(key, value)
		}
	}
}

func getEnvInt(name string) (int, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return 0, false
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// processDurations converts raw numeric fields into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.RateLimit.Window = time.Duration(config.RateLimit.Window) * time.Second
}
