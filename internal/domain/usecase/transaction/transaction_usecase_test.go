package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/mocks/port/core"
	"github.com/amirhossein-jamali/finquery/mocks/port/persistence"
)

func ptr(s string) *string { return &s }

func demoLedger() []*entity.Transaction {
	user := &entity.User{ID: uuid.New(), Name: "John Doe"}
	build := func(txType entity.TransactionType, amount, currency string, status entity.TransactionStatus) *entity.Transaction {
		return &entity.Transaction{
			ID:       uuid.New(),
			UserID:   user.ID,
			Type:     txType,
			Amount:   decimal.RequireFromString(amount),
			Currency: currency,
			Status:   status,
			User:     user,
		}
	}
	return []*entity.Transaction{
		build(entity.TypeFundWallet, "1000.00", "USD", entity.StatusSuccessful),
		build(entity.TypeSendMoney, "250.50", "USD", entity.StatusSuccessful),
		build(entity.TypeSendMoney, "100.00", "EUR", entity.StatusPending),
		build(entity.TypeWithdraw, "75.25", "USD", entity.StatusFailed),
	}
}

// matchingRepo answers Find by applying the filter to an in-memory ledger
func matchingRepo(t *testing.T, ledger []*entity.Transaction) *persistence.MockTransactionRepository {
	repo := persistence.NewMockTransactionRepository(t)
	repo.On("Find", mock.Anything, mock.Anything).Return(
		func(_ context.Context, filter entity.TransactionFilter) []*entity.Transaction {
			var result []*entity.Transaction
			for _, tx := range ledger {
				if matches(filter, tx) {
					result = append(result, tx)
				}
				if filter.Limit > 0 && len(result) == filter.Limit {
					break
				}
			}
			return result
		}, nil)
	return repo
}

// matches mirrors the equality clauses the repository adds per set criterion
func matches(filter entity.TransactionFilter, tx *entity.Transaction) bool {
	return (filter.Type == nil || tx.Type == *filter.Type) &&
		(filter.Status == nil || tx.Status == *filter.Status) &&
		(filter.Currency == nil || tx.Currency == *filter.Currency)
}

func newUseCase(repo *persistence.MockTransactionRepository) *TransactionUseCase {
	timeProvider := (&core.MockTimeProvider{}).PassThroughTimeouts()
	return NewTransactionUseCase(repo, timeProvider, core.NewPermissiveMockLogger())
}

func TestTransactionUseCase_FilterTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("should return only successful rows regardless of type and currency", func(t *testing.T) {
		ledger := demoLedger()
		useCase := newUseCase(matchingRepo(t, ledger))

		result, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{Status: ptr("SUCCESSFUL")})

		require.NoError(t, err)
		require.Len(t, result, 2)
		for _, tx := range result {
			assert.Equal(t, entity.StatusSuccessful, tx.Status)
		}
	})

	t.Run("should apply criteria as a conjunction", func(t *testing.T) {
		ledger := demoLedger()
		useCase := newUseCase(matchingRepo(t, ledger))

		result, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{
			Type:     ptr("SEND_MONEY"),
			Currency: ptr("USD"),
		})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "250.50", entity.AmountToString(result[0].Amount))
	})

	t.Run("should return every row when no criteria are supplied", func(t *testing.T) {
		ledger := demoLedger()
		useCase := newUseCase(matchingRepo(t, ledger))

		result, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{})

		require.NoError(t, err)
		assert.Len(t, result, 4)
	})

	t.Run("should honor the cap only when one is given", func(t *testing.T) {
		user := &entity.User{ID: uuid.New(), Name: "Jane Smith"}
		ledger := make([]*entity.Transaction, 0, 15)
		for i := 0; i < 15; i++ {
			ledger = append(ledger, &entity.Transaction{
				ID:        uuid.New(),
				UserID:    user.ID,
				Type:      entity.TypeFundWallet,
				Amount:    decimal.NewFromInt(int64(i + 1)),
				Currency:  "CAD",
				Status:    entity.StatusSuccessful,
				Reference: fmt.Sprintf("TXN-%08d", i),
				User:      user,
			})
		}
		useCase := newUseCase(matchingRepo(t, ledger))

		capped, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{Status: ptr("SUCCESSFUL"), Limit: 10})
		require.NoError(t, err)
		assert.Len(t, capped, 10)

		all, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{Status: ptr("SUCCESSFUL")})
		require.NoError(t, err)
		assert.Len(t, all, 15)
	})

	t.Run("should reject invalid input before store access", func(t *testing.T) {
		testCases := []struct {
			name  string
			query usecase.TransactionQuery
			field string
		}{
			{"unknown type", usecase.TransactionQuery{Type: ptr("BOGUS")}, "type"},
			{"unknown status", usecase.TransactionQuery{Status: ptr("DONE")}, "status"},
			{"short currency", usecase.TransactionQuery{Currency: ptr("US")}, "currency"},
			{"long currency", usecase.TransactionQuery{Currency: ptr("USDX")}, "currency"},
			{"negative limit", usecase.TransactionQuery{Limit: -5}, "limit"},
			{"type checked before status", usecase.TransactionQuery{Type: ptr("x"), Status: ptr("y")}, "type"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				repo := persistence.NewMockTransactionRepository(t)
				useCase := newUseCase(repo)

				result, err := useCase.FilterTransactions(ctx, tc.query)

				assert.Nil(t, result)
				require.ErrorIs(t, err, errs.ErrValidation)
				var validationErr *errs.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, tc.field, validationErr.Field)
				repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("should pass the converted filter to the repository", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)
		fundWallet := entity.TypeFundWallet
		repo.On("Find", ctx, entity.TransactionFilter{Type: &fundWallet, Currency: ptr("GBP"), Limit: 3}).
			Return([]*entity.Transaction{}, nil)
		useCase := newUseCase(repo)

		result, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{
			Type:     ptr("FUND_WALLET"),
			Currency: ptr("GBP"),
			Limit:    3,
		})

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)
		storeErr := errs.NewStoreError("find transactions", errs.StoreKindTimeout, context.DeadlineExceeded)
		repo.On("Find", ctx, mock.Anything).Return(nil, storeErr)
		useCase := newUseCase(repo)

		result, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrStore)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestTransactionUseCase_QueryTimeout(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMockTransactionRepository(t)
	repo.On("Find", mock.Anything, mock.Anything).Return([]*entity.Transaction{}, nil)

	timeProvider := core.NewMockTimeProvider(t)
	timeProvider.On("WithTimeout", ctx, 2*time.Second).Return(ctx, context.CancelFunc(func() {})).Once()

	useCase := NewTransactionUseCase(repo, timeProvider, core.NewPermissiveMockLogger()).
		WithQueryTimeout(2 * time.Second)

	_, err := useCase.FilterTransactions(ctx, usecase.TransactionQuery{})
	require.NoError(t, err)
}

func TestTransactionUseCase_GetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the transaction with its user", func(t *testing.T) {
		tx := demoLedger()[0]
		repo := persistence.NewMockTransactionRepository(t)
		repo.On("GetByID", ctx, tx.ID).Return(tx, nil)

		result, err := newUseCase(repo).GetTransaction(ctx, tx.ID.String())

		require.NoError(t, err)
		assert.Equal(t, tx.ID, result.ID)
		assert.Equal(t, "John Doe", result.UserName())
	})

	t.Run("should return not found for unknown ids", func(t *testing.T) {
		id := uuid.New()
		repo := persistence.NewMockTransactionRepository(t)
		repo.On("GetByID", ctx, id).Return(nil, errs.ErrTransactionNotFound)

		result, err := newUseCase(repo).GetTransaction(ctx, id.String())

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("should reject malformed ids", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)

		result, err := newUseCase(repo).GetTransaction(ctx, "42")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrValidation)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
