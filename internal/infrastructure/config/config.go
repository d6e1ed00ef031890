package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	MCP         MCPConfig       `mapstructure:"mcp"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	Seed        SeedConfig      `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`   // startup connection only
	RetryDelay      time.Duration `mapstructure:"retryDelay"`      // seconds
	SlowQueryMs     int           `mapstructure:"slowQueryMs"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MCPConfig contains the tool/prompt surface settings
type MCPConfig struct {
	SearchLimit      int            `mapstructure:"searchLimit"`
	PublicPath       string         `mapstructure:"publicPath"`
	AdminPath        string         `mapstructure:"adminPath"`
	Stateless        bool           `mapstructure:"stateless"`
	MaxBodyBytes     int64          `mapstructure:"maxBodyBytes"`
	HeartbeatSeconds int            `mapstructure:"heartbeatSeconds"` // 0 disables SSE heartbeats
	Admin            MCPAdminConfig `mapstructure:"admin"`
}

// MCPAdminConfig protects the admin server; an empty JWTSecret disables it
type MCPAdminConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	Issuer    string `mapstructure:"issuer"`
}

// RateLimitConfig contains the Redis-backed limiter settings
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	RedisAddr     string        `mapstructure:"redisAddr"`
	RedisPassword string        `mapstructure:"redisPassword"`
	RedisDB       int           `mapstructure:"redisDB"`
	MaxRequests   int           `mapstructure:"maxRequests"`
	Window        time.Duration `mapstructure:"windowSeconds"` // seconds
}

// MetricsConfig contains Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SeedConfig controls demo data provisioning
type SeedConfig struct {
	DemoData bool `mapstructure:"demoData"`
}
