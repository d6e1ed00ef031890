package database

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
)

const poolMonitorInterval = 30 * time.Second

// Manager owns the read connection to the ledger store
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
	registerer        prometheus.Registerer
	connectionMonitor *ConnectionPoolMonitor
	sleep             func(time.Duration)
}

// NewManager creates a new database manager; reg receives the pool gauges and may be nil
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider, reg prometheus.Registerer) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
		registerer:   reg,
		sleep:        time.Sleep,
	}
}

// Connect opens the connection, retrying only at startup
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	gormDB, err := m.openWithRetry(ctx)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":          m.config.Driver,
		"host":            m.config.Host,
		"name":            m.config.Database,
		"max_open_conns":  m.config.MaxOpenConns,
		"max_idle_conns":  m.config.MaxIdleConns,
		"query_timeout_s": m.config.QueryTimeout.Seconds(),
	})

	m.db = gormDB
	m.connectionMonitor = NewConnectionPoolMonitor(func() (StatsSource, error) {
		return m.db.DB()
	}, m.logger, m.registerer)

	if err := m.connectionMonitor.Start(poolMonitorInterval); err != nil {
		m.logger.Warn("Failed to start connection pool monitoring", map[string]any{"error": err.Error()})
	}

	return m.db, nil
}

func (m *Manager) openWithRetry(ctx context.Context) (*gorm.DB, error) {
	if m.config.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}

	attempts := m.config.Attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt,
				"of":      attempts,
				"delay":   m.config.RetryDelay.String(),
			})
			m.sleep(m.config.RetryDelay)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gormDB, err := gorm.Open(postgres.Open(m.config.DSN()), &gorm.Config{
			Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
			NowFunc: func() time.Time {
				return m.timeProvider.Now()
			},
			PrepareStmt: true,
		})
		if err == nil {
			if err = m.ping(ctx, gormDB); err == nil {
				return gormDB, nil
			}
		}

		lastErr = err
		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt,
		})
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, lastErr)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks the store is reachable within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database is not connected")
	}
	return m.ping(ctx, m.db)
}

func (m *Manager) ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := m.timeProvider.WithTimeout(ctx, m.config.QueryTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// PoolMetrics returns the latest pool snapshot
func (m *Manager) PoolMetrics() ConnectionPoolMetrics {
	if m.connectionMonitor == nil {
		return ConnectionPoolMetrics{}
	}
	return m.connectionMonitor.GetMetrics()
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}
