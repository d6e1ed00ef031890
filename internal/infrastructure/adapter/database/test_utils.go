package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for integration tests against a real PostgreSQL
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to the database named by TEST_DB_* variables.
// The test is skipped when TEST_DB_HOST is unset.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv("TEST_DB_HOST")
	if !ok || host == "" {
		t.Skip("TEST_DB_HOST not set; skipping database integration test")
	}

	timeProvider := timeprovider.NewRealTimeProvider()

	config := &Config{
		Driver:          "postgres",
		Host:            host,
		Port:            getEnvIntOrDefault("TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("TEST_DB_DATABASE", "finquery_test"),
		SSLMode:         getEnvOrDefault("TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
		RetryDelay:      time.Second,
	}

	manager := NewManager(config, logger, timeProvider, nil)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	m := &TestDBManager{
		Manager:      manager,
		Config:       config,
		TimeProvider: timeProvider,
	}
	m.setupSchema(t)
	return m
}

func (m *TestDBManager) setupSchema(t *testing.T) {
	t.Helper()

	db := m.Manager.DB()
	if err := db.Migrator().DropTable(&model.Transaction{}, &model.User{}); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Transaction{}); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
}

// CreateTestUser inserts a user with the given name and balance
func (m *TestDBManager) CreateTestUser(t *testing.T, name, balance string) *model.User {
	t.Helper()

	now := m.TimeProvider.Now()
	user := &model.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     uuid.NewString() + "@example.com",
		Country:   "US",
		Balance:   decimal.RequireFromString(balance),
		Password:  "x",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Manager.DB().Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction inserts a transaction for userID created at the given instant
func (m *TestDBManager) CreateTestTransaction(t *testing.T, userID uuid.UUID, txType, amount, currency, status string, createdAt time.Time) *model.Transaction {
	t.Helper()

	tx := &model.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      txType,
		Amount:    decimal.RequireFromString(amount),
		Currency:  currency,
		Status:    status,
		Reference: "TXN-" + uuid.NewString()[:8],
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := m.Manager.DB().Create(tx).Error; err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
