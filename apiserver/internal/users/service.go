package users

import (
	"context"

	"github.com/inkwellhq/inkwell"
	"github.com/pkg/errors"
)

// Service is the specialized interface for managing Users. It's decoupled
// from underlying technology choices (e.g. data store) to keep business
// logic reusable and consistent while the underlying tech stack remains free
// to change.
type Service interface {
	// Get retrieves a single User by ID.
	Get(ctx context.Context, id string) (inkwell.User, error)
	// Update applies a partial profile update to the identified User. A user
	// may only update their own profile: the authenticated subject must match
	// the target ID or the update is rejected as unauthorized.
	Update(
		ctx context.Context,
		subject string,
		id string,
		update inkwell.UserUpdate,
	) (inkwell.User, error)
}

type service struct {
	store Store
}

// NewService returns a specialized interface for managing Users.
func NewService(store Store) Service {
	return &service{
		store: store,
	}
}

func (s *service) Get(ctx context.Context, id string) (inkwell.User, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return user, err
		}
		return user, errors.Wrapf(err, "error retrieving user %q from store", id)
	}
	return user, nil
}

func (s *service) Update(
	ctx context.Context,
	subject string,
	id string,
	update inkwell.UserUpdate,
) (inkwell.User, error) {
	if subject != id {
		return inkwell.User{}, inkwell.NewErrAuthorization()
	}
	user, err := s.store.Update(ctx, id, update)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return user, err
		}
		return user, errors.Wrapf(err, "error updating user %q in store", id)
	}
	return user, nil
}
