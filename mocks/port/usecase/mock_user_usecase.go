package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// MockUserUseCase is a mock implementation of usecase.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

// NewMockUserUseCase creates a MockUserUseCase whose expectations are asserted on cleanup
func NewMockUserUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserUseCase {
	m := &MockUserUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserUseCase) GetUserBalance(ctx context.Context, userID string) (*entity.UserBalance, error) {
	args := m.Called(ctx, userID)
	balance, _ := args.Get(0).(*entity.UserBalance)
	return balance, args.Error(1)
}

func (m *MockUserUseCase) GetUserStatistics(ctx context.Context, userID string) (*entity.UserStatistics, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*entity.UserStatistics)
	return stats, args.Error(1)
}

func (m *MockUserUseCase) UserExists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserUseCase) ListUserTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID)
	transactions, _ := args.Get(0).([]*entity.Transaction)
	return transactions, args.Error(1)
}
