package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	mockcore "github.com/amirhossein-jamali/finquery/mocks/port/core"
)

func TestManagerRejectsUnsupportedDriver(t *testing.T) {
	logger := mockcore.NewMockLogger(t)
	logger.On("Info", "Connecting to database", mock.Anything).Once()

	manager := NewManager(&Config{Driver: "mysql", RetryAttempts: 3}, logger, mockcore.NewMockTimeProvider(t), nil)

	_, err := manager.Connect(context.Background())
	assert.ErrorContains(t, err, "unsupported database driver")
	assert.Nil(t, manager.DB())
	assert.Error(t, manager.Ping(context.Background()))
	assert.Equal(t, ConnectionPoolMetrics{}, manager.PoolMetrics())
}

func TestManagerCloseWithoutConnection(t *testing.T) {
	logger := mockcore.NewMockLogger(t)
	logger.On("Info", "Closing database connection", mock.Anything).Once()

	manager := NewManager(&Config{Driver: "postgres"}, logger, mockcore.NewMockTimeProvider(t), nil)

	assert.NoError(t, manager.Close())
}
