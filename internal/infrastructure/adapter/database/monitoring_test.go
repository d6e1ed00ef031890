package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	mockcore "github.com/amirhossein-jamali/finquery/mocks/port/core"
)

func newTestCollector(t *testing.T, elapsed time.Duration) (*MetricsCollector, *mockcore.MockLogger, *prometheus.Registry) {
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	timeProvider := mockcore.NewMockTimeProvider(t)
	timeProvider.On("Now").Return(start)
	timeProvider.On("Since", start).Return(elapsed)

	logger := mockcore.NewMockLogger(t)
	reg := prometheus.NewRegistry()
	return NewMetricsCollector(logger, timeProvider, reg, 200*time.Millisecond), logger, reg
}

func TestMeasureQuery(t *testing.T) {
	t.Run("Successful read", func(t *testing.T) {
		collector, _, reg := newTestCollector(t, 10*time.Millisecond)

		metrics, err := collector.MeasureQuery(context.Background(), "transactions.find", func(context.Context) (int64, error) {
			return 4, nil
		})

		require.NoError(t, err)
		assert.Equal(t, int64(4), metrics.RowsReturned)
		assert.False(t, metrics.Failed)
		count, err := testutil.GatherAndCount(reg, "finquery_store_query_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Not found is not a failure", func(t *testing.T) {
		collector, _, _ := newTestCollector(t, time.Millisecond)

		metrics, err := collector.MeasureQuery(context.Background(), "users.get", func(context.Context) (int64, error) {
			return 0, gorm.ErrRecordNotFound
		})

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.False(t, metrics.Failed)
	})

	t.Run("Slow failed read warns", func(t *testing.T) {
		collector, logger, _ := newTestCollector(t, time.Second)
		logger.On("Warn", "Slow database query detected", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["operation"] == "users.list" && fields["failed"] == true
		})).Once()

		metrics, err := collector.MeasureQuery(context.Background(), "users.list", func(context.Context) (int64, error) {
			return 0, errors.New("boom")
		})

		assert.EqualError(t, err, "boom")
		assert.True(t, metrics.Failed)
		assert.Equal(t, "boom", metrics.ErrorMessage)
	})
}
