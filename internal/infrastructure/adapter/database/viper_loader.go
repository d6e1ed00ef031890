package database

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/finquery/internal/infrastructure/config"
)

// NewConfigFromAppConfig adapts the application configuration to database configuration
func NewConfigFromAppConfig(conf *config.Config) *Config {
	return &Config{
		Driver:          conf.Database.Driver,
		Host:            conf.Database.Host,
		Port:            ParsePort(conf.Database.Port),
		Username:        conf.Database.Username,
		Password:        conf.Database.Password,
		Database:        conf.Database.Database,
		SSLMode:         conf.Database.SSLMode,
		MaxOpenConns:    conf.Database.MaxOpenConns,
		MaxIdleConns:    conf.Database.MaxIdleConns,
		ConnMaxLifetime: conf.Database.ConnMaxLifetime,
		ConnMaxIdleTime: conf.Database.ConnMaxIdleTime,
		QueryTimeout:    conf.Database.QueryTimeout,
		LogLevel:        conf.Logger.Level,
		SlowThreshold:   time.Duration(conf.Database.SlowQueryMs) * time.Millisecond,
		RetryAttempts:   conf.Database.RetryAttempts,
		RetryDelay:      conf.Database.RetryDelay,
	}
}

// ParsePort converts a port string to an int, returning 0 when it is not a valid port
func ParsePort(port string) int {
	var p int
	_, err := fmt.Sscanf(port, "%d", &p)
	if err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}
