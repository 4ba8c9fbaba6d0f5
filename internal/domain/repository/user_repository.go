package repository

import (
	"context"

	"github.com/oksasatya/hobbylink/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
//
// Implementations report absence with domain.ErrUserNotFound, username
// collisions with domain.ErrDuplicateUsername, and wrap every other storage
// failure in domain.ErrStoreUnavailable.
type UserRepository interface {
	// Create inserts a new user and fills in the generated id and creation
	// timestamp.
	Create(ctx context.Context, u *entity.User) error

	// GetByID returns the user with the given id.
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// List returns the full user snapshot. The dataset is demo-sized, so
	// there is no pagination.
	List(ctx context.Context) ([]*entity.User, error)

	// Update persists username, age, hobbies and friends of an existing user.
	Update(ctx context.Context, u *entity.User) error

	// UpdateScore writes a recomputed popularity score as a single atomic
	// statement.
	UpdateScore(ctx context.Context, id string, score float64) error

	// Delete removes the user with the given id.
	Delete(ctx context.Context, id string) error

	// WithTx runs fn against a transaction-scoped repository. Either every
	// write inside fn commits or none do. Reads inside the transaction lock
	// the selected rows, so check-then-act sequences cannot race with
	// concurrent mutations of the same records.
	WithTx(ctx context.Context, fn func(UserRepository) error) error
}
