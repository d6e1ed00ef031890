package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
)

// ConnectionPoolMetrics is a snapshot of the database connection pool
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
}

// StatsSource exposes connection pool statistics
type StatsSource interface {
	Stats() sql.DBStats
}

// ConnectionPoolMonitor samples pool statistics into Prometheus gauges and warns when the pool is nearly exhausted
type ConnectionPoolMonitor struct {
	source       func() (StatsSource, error)
	logger       coreport.Logger
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
	stopChan     chan struct{}
	stopOnce     sync.Once

	open    prometheus.Gauge
	inUse   prometheus.Gauge
	idle    prometheus.Gauge
	waitCnt prometheus.Gauge
}

// NewConnectionPoolMonitor creates a monitor and registers its gauges with reg; a nil reg skips registration
func NewConnectionPoolMonitor(source func() (StatsSource, error), logger coreport.Logger, reg prometheus.Registerer) *ConnectionPoolMonitor {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "finquery",
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		})
	}

	m := &ConnectionPoolMonitor{
		source:   source,
		logger:   logger,
		stopChan: make(chan struct{}),
		open:     gauge("open_connections", "Established connections, in use and idle"),
		inUse:    gauge("in_use_connections", "Connections currently in use"),
		idle:     gauge("idle_connections", "Idle connections"),
		waitCnt:  gauge("wait_count", "Total number of connections waited for"),
	}
	if reg != nil {
		reg.MustRegister(m.open, m.inUse, m.idle, m.waitCnt)
	}
	return m
}

// Start collects once and then every interval until Stop
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collectMetrics(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collectMetrics(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring; it is safe to call more than once
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// GetMetrics returns the latest connection pool snapshot
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}
	return *m.metricsCache
}

func (m *ConnectionPoolMonitor) collectMetrics() error {
	source, err := m.source()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := source.Stats()

	m.mutex.Lock()
	m.metricsCache = &ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
	m.mutex.Unlock()

	m.open.Set(float64(stats.OpenConnections))
	m.inUse.Set(float64(stats.InUse))
	m.idle.Set(float64(stats.Idle))
	m.waitCnt.Set(float64(stats.WaitCount))

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}
