package users

import (
	"context"

	"github.com/inkwellhq/inkwell"
)

// Store is an interface for components that persist Users.
type Store interface {
	// Create stores a new User. Username and email collisions are reported as
	// *inkwell.ErrConflict.
	Create(ctx context.Context, user inkwell.User) error
	// Get retrieves a single User by ID.
	Get(ctx context.Context, id string) (inkwell.User, error)
	// GetByEmail retrieves a single User by email address.
	GetByEmail(ctx context.Context, email string) (inkwell.User, error)
	// GetSummaries retrieves the summary projections of every user whose ID
	// appears in the given set, keyed by ID. IDs with no corresponding user
	// are simply absent from the result.
	GetSummaries(
		ctx context.Context,
		ids []string,
	) (map[string]inkwell.UserSummary, error)
	// Update applies a partial profile update to the identified User and
	// returns the updated User.
	Update(
		ctx context.Context,
		id string,
		update inkwell.UserUpdate,
	) (inkwell.User, error)
	// UpdatePassword replaces the identified User's password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
