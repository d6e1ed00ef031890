package usecase

import (
	"context"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// TransactionQuery is the raw, unvalidated filter input shared by the REST and MCP surfaces.
// A nil field imposes no constraint.
type TransactionQuery struct {
	Type     *string
	Status   *string
	Currency *string
	// Limit caps the result size; zero means uncapped
	Limit int
}

// TransactionUseCase defines the ledger queries
type TransactionUseCase interface {
	// FilterTransactions validates the query and returns the matching transactions.
	// Validation failures return *ValidationError without touching the store.
	FilterTransactions(ctx context.Context, query TransactionQuery) ([]*entity.Transaction, error)

	// GetTransaction returns a single transaction with its owning user
	GetTransaction(ctx context.Context, id string) (*entity.Transaction, error)
}
