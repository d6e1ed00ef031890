package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
)

// MockTransactionUseCase is a mock implementation of usecase.TransactionUseCase
type MockTransactionUseCase struct {
	mock.Mock
}

// NewMockTransactionUseCase creates a MockTransactionUseCase whose expectations are asserted on cleanup
func NewMockTransactionUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionUseCase {
	m := &MockTransactionUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionUseCase) FilterTransactions(ctx context.Context, query usecase.TransactionQuery) ([]*entity.Transaction, error) {
	args := m.Called(ctx, query)
	transactions, _ := args.Get(0).([]*entity.Transaction)
	return transactions, args.Error(1)
}

func (m *MockTransactionUseCase) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	transaction, _ := args.Get(0).(*entity.Transaction)
	return transaction, args.Error(1)
}
