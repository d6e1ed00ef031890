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

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	metrics         *database.MetricsCollector
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger, metrics *database.MetricsCollector) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		metrics:         metrics,
		errorClassifier: NewErrorClassifier(),
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.User

	_, err := r.metrics.MeasureQuery(ctx, "users.get", func(ctx context.Context) (int64, error) {
		result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("users.get", err, map[string]any{"user_id": id.String()})
	}

	return userModel.ToEntity(), nil
}

// List returns every user ordered by name
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.User

	_, err := r.metrics.MeasureQuery(ctx, "users.list", func(ctx context.Context) (int64, error) {
		result := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&userModels)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		return nil, r.handleDatabaseError("users.list", err, nil)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].ToEntity())
	}
	return users, nil
}

// Exists reports whether a user with id is stored
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	_, err := r.metrics.MeasureQuery(ctx, "users.exists", func(ctx context.Context) (int64, error) {
		result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count)
		return count, result.Error
	})
	if err != nil {
		return false, r.handleDatabaseError("users.exists", err, map[string]any{"user_id": id.String()})
	}

	return count > 0, nil
}

func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	storeErr := r.errorClassifier.Wrap(operation, err)

	logFields := errs.LogFields(storeErr)
	for k, v := range fields {
		logFields[k] = v
	}
	r.logger.Error("Database error when reading users", logFields)

	return storeErr
}

var _ persistence.UserRepository = (*UserRepository)(nil)
