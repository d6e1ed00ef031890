package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// TransactionRepository defines read access to the ledger.
// Every returned transaction has its owning User loaded.
// Results are ordered by created_at descending, then id ascending.
type TransactionRepository interface {
	// Find returns the transactions matching every non-nil criterion of the filter.
	// A zero Limit returns all matches.
	//
	// Possible errors:
	// - *StoreError: If the read fails or times out
	Find(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// GetByID retrieves a single transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the given ID
	// - *StoreError: If the read fails or times out
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// ListByUserID returns every transaction owned by the user
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)
}
