package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/model"
)

// ledgerOrder is the listing order of every multi-row read
const ledgerOrder = "created_at DESC, id ASC"

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	metrics         *database.MetricsCollector
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger, metrics *database.MetricsCollector) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		metrics:         metrics,
		errorClassifier: NewErrorClassifier(),
	}
}

// Find returns the transactions matching every set criterion of filter
func (r *TransactionRepository) Find(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction

	_, err := r.metrics.MeasureQuery(ctx, "transactions.find", func(ctx context.Context) (int64, error) {
		result := applyFilter(r.db.WithContext(ctx).Preload("User"), filter).
			Order(ledgerOrder).
			Find(&transactionModels)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		return nil, r.handleDatabaseError("transactions.find", err, filterFields(filter))
	}

	return model.TransactionsToEntities(transactionModels), nil
}

// GetByID retrieves a transaction and its owner
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.Transaction

	_, err := r.metrics.MeasureQuery(ctx, "transactions.get", func(ctx context.Context) (int64, error) {
		result := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&transactionModel)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, r.handleDatabaseError("transactions.get", err, map[string]any{"transaction_id": id.String()})
	}

	return transactionModel.ToEntity(), nil
}

// ListByUserID returns all transactions owned by userID
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction

	_, err := r.metrics.MeasureQuery(ctx, "transactions.list_by_user", func(ctx context.Context) (int64, error) {
		result := r.db.WithContext(ctx).Preload("User").
			Where("user_id = ?", userID).
			Order(ledgerOrder).
			Find(&transactionModels)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		return nil, r.handleDatabaseError("transactions.list_by_user", err, map[string]any{"user_id": userID.String()})
	}

	return model.TransactionsToEntities(transactionModels), nil
}

// applyFilter adds one equality clause per set criterion and the row cap
func applyFilter(db *gorm.DB, filter entity.TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		db = db.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.Currency != nil {
		db = db.Where("currency = ?", *filter.Currency)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	return db
}

func filterFields(filter entity.TransactionFilter) map[string]any {
	fields := map[string]any{"limit": filter.Limit}
	if filter.Type != nil {
		fields["type"] = string(*filter.Type)
	}
	if filter.Status != nil {
		fields["status"] = string(*filter.Status)
	}
	if filter.Currency != nil {
		fields["currency"] = *filter.Currency
	}
	return fields
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	storeErr := r.errorClassifier.Wrap(operation, err)

	logFields := errs.LogFields(storeErr)
	for k, v := range fields {
		logFields[k] = v
	}
	r.logger.Error("Database error when reading transactions", logFields)

	return storeErr
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)
