package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// MockTransactionRepository is a mock implementation of persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a MockTransactionRepository whose expectations are asserted on cleanup
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Find(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	args := m.Called(ctx, filter)
	if fn, ok := args.Get(0).(func(context.Context, entity.TransactionFilter) []*entity.Transaction); ok {
		return fn(ctx, filter), args.Error(1)
	}
	transactions, _ := args.Get(0).([]*entity.Transaction)
	return transactions, args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	transaction, _ := args.Get(0).(*entity.Transaction)
	return transaction, args.Error(1)
}

func (m *MockTransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID)
	transactions, _ := args.Get(0).([]*entity.Transaction)
	return transactions, args.Error(1)
}
