package user

import (
	"context"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	"github.com/amirhossein-jamali/finquery/internal/domain/validation"
)

// GetUserStatistics aggregates every transaction of the user.
// The stored balance is reported verbatim; a mismatch with the ledger net is logged, never corrected.
func (u *UserUseCase) GetUserStatistics(ctx context.Context, userID string) (*entity.UserStatistics, error) {
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

	transactions, err := u.transactionRepo.ListByUserID(ctx, id)
	if err != nil {
		u.logger.Error("Failed to load user transactions", errs.LogFields(err))
		return nil, err
	}

	stats := entity.NewUserStatistics(user, transactions)

	if net := stats.ComputedNet(); !net.Equal(stats.Balance) {
		u.logger.Warn("Stored balance differs from ledger net", map[string]any{
			"userId":     user.ID.String(),
			"balance":    entity.AmountToString(stats.Balance),
			"ledger_net": entity.AmountToString(net),
		})
	}

	return stats, nil
}
