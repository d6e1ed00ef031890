package transaction

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

// TransactionUseCase answers ledger queries
type TransactionUseCase struct {
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	queryTimeout    time.Duration
	rules           validation.Pipeline[usecase.TransactionQuery]
}

// NewTransactionUseCase creates a new transaction use case instance
func NewTransactionUseCase(
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
		rules:           queryRules(),
	}
}

// WithQueryTimeout bounds every store read; zero leaves reads bound only by the caller's context
func (uc *TransactionUseCase) WithQueryTimeout(timeout time.Duration) *TransactionUseCase {
	uc.queryTimeout = timeout
	return uc
}

// FilterTransactions returns every transaction matching all supplied criteria
func (uc *TransactionUseCase) FilterTransactions(ctx context.Context, query usecase.TransactionQuery) ([]*entity.Transaction, error) {
	if err := uc.rules.Validate(query); err != nil {
		uc.logger.Warn("Rejected transaction query", errs.LogFields(err))
		return nil, err
	}

	filter := toFilter(query)

	ctx, cancel := uc.timeProvider.WithTimeout(ctx, uc.queryTimeout)
	defer cancel()

	transactions, err := uc.transactionRepo.Find(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to filter transactions", errs.LogFields(err))
		return nil, err
	}

	uc.logger.Debug("Transactions filtered", map[string]any{
		"type":     deref(query.Type),
		"status":   deref(query.Status),
		"currency": deref(query.Currency),
		"limit":    query.Limit,
		"count":    len(transactions),
	})

	return transactions, nil
}

// GetTransaction returns a single transaction with its owning user
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	transactionID, err := validation.ParseUUID("id", id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.timeProvider.WithTimeout(ctx, uc.queryTimeout)
	defer cancel()

	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		if !errs.IsNotFoundError(err) {
			uc.logger.Error("Failed to get transaction", errs.LogFields(err))
		}
		return nil, err
	}

	return transaction, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

var _ usecase.TransactionUseCase = (*TransactionUseCase)(nil)
