package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// UserRepository defines read access to users
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - *StoreError: If the read fails or times out
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// List returns every user ordered by name
	List(ctx context.Context) ([]*entity.User, error)

	// Exists reports whether a user with the given ID is stored
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
