package user

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/domain/validation"
)

const userIDField = "user_id"

// UserUseCase implements the user queries
type UserUseCase struct {
	userRepo        persistence.UserRepository
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	queryTimeout    time.Duration
}

// NewUserUseCase creates a new user use case instance
func NewUserUseCase(
	userRepo persistence.UserRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// WithQueryTimeout bounds every store read; zero leaves reads bound only by the caller's context
func (u *UserUseCase) WithQueryTimeout(timeout time.Duration) *UserUseCase {
	u.queryTimeout = timeout
	return u
}

// GetUserBalance returns the stored balance of a user
func (u *UserUseCase) GetUserBalance(ctx context.Context, userID string) (*entity.UserBalance, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := user.ToBalance()

	u.logger.Info("User balance retrieved", map[string]any{
		"userId":  user.ID.String(),
		"balance": entity.AmountToString(balance.Balance),
	})

	return balance, nil
}

// GetUser returns a single user
func (u *UserUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := validation.ParseUUID(userIDField, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.queryTimeout)
	defer cancel()

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		u.logLookupFailure("Failed to get user", userID, err)
		return nil, err
	}

	return user, nil
}

// UserExists checks if a user exists with the given ID
func (u *UserUseCase) UserExists(ctx context.Context, userID string) (bool, error) {
	id, err := validation.ParseUUID(userIDField, userID)
	if err != nil {
		return false, err
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.queryTimeout)
	defer cancel()

	exists, err := u.userRepo.Exists(ctx, id)
	if err != nil {
		u.logger.Error("Failed to check user existence", errs.LogFields(err))
		return false, err
	}
	return exists, nil
}

// ListUsers returns every user
func (u *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.queryTimeout)
	defer cancel()

	users, err := u.userRepo.List(ctx)
	if err != nil {
		u.logger.Error("Failed to list users", errs.LogFields(err))
		return nil, err
	}
	return users, nil
}

// ListUserTransactions returns the transactions of an existing user
func (u *UserUseCase) ListUserTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	id, err := validation.ParseUUID(userIDField, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.queryTimeout)
	defer cancel()

	exists, err := u.userRepo.Exists(ctx, id)
	if err != nil {
		u.logger.Error("Failed to check user existence", errs.LogFields(err))
		return nil, err
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	transactions, err := u.transactionRepo.ListByUserID(ctx, id)
	if err != nil {
		u.logger.Error("Failed to list user transactions", errs.LogFields(err))
		return nil, err
	}
	return transactions, nil
}

func (u *UserUseCase) logLookupFailure(message, userID string, err error) {
	fields := errs.LogFields(err)
	fields["userId"] = userID
	if errs.IsNotFoundError(err) {
		u.logger.Warn(message, fields)
		return
	}
	u.logger.Error(message, fields)
}

var _ usecase.UserUseCase = (*UserUseCase)(nil)
