package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/inkwellhq/inkwell"
)

// UsersClient is the specialized client for User management.
type UsersClient interface {
	// Get retrieves a single user's public profile by ID.
	Get(context.Context, string) (inkwell.User, error)
	// Update replaces the identified user's profile fields. Only the user
	// themselves may do this.
	Update(
		ctx context.Context,
		id string,
		update inkwell.UserUpdate,
	) (inkwell.User, error)
}

type usersClient struct {
	*BaseClient
}

// NewUsersClient returns a specialized client for User management.
func NewUsersClient(baseClient *BaseClient) UsersClient {
	return &usersClient{
		BaseClient: baseClient,
	}
}

func (u *usersClient) Get(
	ctx context.Context,
	id string,
) (inkwell.User, error) {
	user := inkwell.User{}
	return user, u.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("users/%s", id),
			SuccessCode: http.StatusOK,
			RespObj:     &user,
		},
	)
}

func (u *usersClient) Update(
	ctx context.Context,
	id string,
	update inkwell.UserUpdate,
) (inkwell.User, error) {
	user := inkwell.User{}
	return user, u.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("users/%s", id),
			AuthHeaders: u.BearerTokenAuthHeaders(),
			ReqBodyObj:  update,
			SuccessCode: http.StatusOK,
			RespObj:     &user,
		},
	)
}
