package usecase

import (
	"context"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// UserUseCase defines user-centric queries. Every user ID is validated as a UUID before the store is read.
type UserUseCase interface {
	// GetUserBalance returns the stored balance of the user
	GetUserBalance(ctx context.Context, userID string) (*entity.UserBalance, error)

	// GetUserStatistics aggregates the user's ledger activity
	GetUserStatistics(ctx context.Context, userID string) (*entity.UserStatistics, error)

	// UserExists checks if a user exists with the given ID
	UserExists(ctx context.Context, userID string) (bool, error)

	ListUsers(ctx context.Context) ([]*entity.User, error)

	GetUser(ctx context.Context, userID string) (*entity.User, error)

	// ListUserTransactions returns the user's transactions; the user must exist
	ListUserTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error)
}
