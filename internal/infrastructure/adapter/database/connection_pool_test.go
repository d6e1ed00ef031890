package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mockcore "github.com/amirhossein-jamali/finquery/mocks/port/core"
)

type fakeStats struct {
	stats sql.DBStats
}

func (f fakeStats) Stats() sql.DBStats { return f.stats }

func TestConnectionPoolMonitor(t *testing.T) {
	t.Run("Collects and exports pool gauges", func(t *testing.T) {
		logger := mockcore.NewMockLogger(t)
		reg := prometheus.NewRegistry()
		source := fakeStats{stats: sql.DBStats{MaxOpenConnections: 25, OpenConnections: 6, InUse: 4, Idle: 2, WaitCount: 1}}

		monitor := NewConnectionPoolMonitor(func() (StatsSource, error) { return source, nil }, logger, reg)
		require.NoError(t, monitor.Start(time.Hour))
		defer monitor.Stop()

		metrics := monitor.GetMetrics()
		assert.Equal(t, 6, metrics.OpenConnections)
		assert.Equal(t, 4, metrics.InUse)
		assert.Equal(t, 25, metrics.MaxOpenConnections)
		assert.Equal(t, float64(4), testutil.ToFloat64(monitor.inUse))
	})

	t.Run("Warns when nearly exhausted", func(t *testing.T) {
		logger := mockcore.NewMockLogger(t)
		logger.On("Warn", "Database connection pool nearly exhausted", mock.Anything).Once()
		source := fakeStats{stats: sql.DBStats{MaxOpenConnections: 10, InUse: 9, OpenConnections: 10}}

		monitor := NewConnectionPoolMonitor(func() (StatsSource, error) { return source, nil }, logger, nil)
		require.NoError(t, monitor.collectMetrics())
	})

	t.Run("Start fails without a connection", func(t *testing.T) {
		monitor := NewConnectionPoolMonitor(func() (StatsSource, error) {
			return nil, errors.New("closed")
		}, mockcore.NewMockLogger(t), nil)

		assert.Error(t, monitor.Start(time.Hour))
		assert.Equal(t, ConnectionPoolMetrics{}, monitor.GetMetrics())
		monitor.Stop()
		monitor.Stop()
	})
}
