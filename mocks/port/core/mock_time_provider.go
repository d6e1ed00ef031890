package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock implementation of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// NewMockTimeProvider creates a MockTimeProvider whose expectations are asserted on cleanup
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PassThroughTimeouts makes WithTimeout return the incoming context unchanged
func (m *MockTimeProvider) PassThroughTimeouts() *MockTimeProvider {
	m.On("WithTimeout", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, _ time.Duration) (context.Context, context.CancelFunc) {
			return ctx, func() {}
		}).Maybe()
	return m
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	args := m.Called(ctx, timeout)
	if fn, ok := args.Get(0).(func(context.Context, time.Duration) (context.Context, context.CancelFunc)); ok {
		return fn(ctx, timeout)
	}
	return args.Get(0).(context.Context), args.Get(1).(context.CancelFunc)
}
