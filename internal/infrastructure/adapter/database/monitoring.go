package database

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
)

// QueryMetrics holds metrics about a single store read
type QueryMetrics struct {
	Operation    string
	Duration     time.Duration
	RowsReturned int64
	Failed       bool
	ErrorMessage string
}

// MetricsCollector times repository reads, exports them as a Prometheus histogram and logs slow ones
type MetricsCollector struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration
	duration      *prometheus.HistogramVec
}

// NewMetricsCollector creates a collector and registers its histogram with reg; a nil reg skips registration
func NewMetricsCollector(
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	reg prometheus.Registerer,
	slowThreshold time.Duration,
) *MetricsCollector {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finquery",
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of ledger store reads",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "outcome"},
	)
	if reg != nil {
		reg.MustRegister(duration)
	}

	return &MetricsCollector{
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: slowThreshold,
		duration:      duration,
	}
}

// MeasureQuery runs fn and records how long it took.
// fn returns the number of rows read; record-not-found counts as a successful read.
func (c *MetricsCollector) MeasureQuery(ctx context.Context, operation string, fn func(ctx context.Context) (int64, error)) (*QueryMetrics, error) {
	start := c.timeProvider.Now()

	rows, err := fn(ctx)

	metrics := &QueryMetrics{
		Operation:    operation,
		Duration:     c.timeProvider.Since(start),
		RowsReturned: rows,
		Failed:       err != nil && !errors.Is(err, gorm.ErrRecordNotFound),
	}

	outcome := "ok"
	if metrics.Failed {
		outcome = "error"
		metrics.ErrorMessage = err.Error()
	}
	c.duration.WithLabelValues(operation, outcome).Observe(metrics.Duration.Seconds())

	if c.slowThreshold > 0 && metrics.Duration > c.slowThreshold {
		c.logger.Warn("Slow database query detected", map[string]any{
			"operation":     operation,
			"duration_ms":   metrics.Duration.Milliseconds(),
			"rows_returned": rows,
			"failed":        metrics.Failed,
			"error_message": metrics.ErrorMessage,
		})
	}

	return metrics, err
}
