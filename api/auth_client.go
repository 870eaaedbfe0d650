package api

import (
	"context"
	"net/http"

	"github.com/inkwellhq/inkwell"
)

// AuthClient is the specialized client for authentication and session
// management. None of its operations mutate the shared credential; callers
// decide what to do with a token obtained from Register or Login.
type AuthClient interface {
	// Register creates a new user account and returns it along with a fresh
	// bearer token for it.
	Register(context.Context, inkwell.Registration) (inkwell.AuthResponse, error)
	// Login exchanges credentials for the corresponding user and a fresh
	// bearer token.
	Login(context.Context, inkwell.Credentials) (inkwell.AuthResponse, error)
	// Verify resolves the client's current token to the user it identifies.
	Verify(context.Context) (inkwell.User, error)
	// Logout revokes the client's current token server-side.
	Logout(context.Context) error
	// ChangePassword replaces the authenticated user's password.
	ChangePassword(context.Context, inkwell.PasswordChange) error
}

type authClient struct {
	*BaseClient
}

// NewAuthClient returns a specialized client for authentication and session
// management.
func NewAuthClient(baseClient *BaseClient) AuthClient {
	return &authClient{
		BaseClient: baseClient,
	}
}

func (a *authClient) Register(
	ctx context.Context,
	registration inkwell.Registration,
) (inkwell.AuthResponse, error) {
	authResp := inkwell.AuthResponse{}
	return authResp, a.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/register",
			ReqBodyObj:  registration,
			SuccessCode: http.StatusCreated,
			RespObj:     &authResp,
		},
	)
}

func (a *authClient) Login(
	ctx context.Context,
	credentials inkwell.Credentials,
) (inkwell.AuthResponse, error) {
	authResp := inkwell.AuthResponse{}
	return authResp, a.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/login",
			ReqBodyObj:  credentials,
			SuccessCode: http.StatusOK,
			RespObj:     &authResp,
		},
	)
}

func (a *authClient) Verify(ctx context.Context) (inkwell.User, error) {
	verifyResp := inkwell.VerifyResponse{}
	if err := a.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        "auth/verify",
			AuthHeaders: a.BearerTokenAuthHeaders(),
			SuccessCode: http.StatusOK,
			RespObj:     &verifyResp,
		},
	); err != nil {
		return inkwell.User{}, err
	}
	return verifyResp.Data.User, nil
}

func (a *authClient) Logout(ctx context.Context) error {
	return a.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/logout",
			AuthHeaders: a.BearerTokenAuthHeaders(),
			SuccessCode: http.StatusOK,
		},
	)
}

func (a *authClient) ChangePassword(
	ctx context.Context,
	passwordChange inkwell.PasswordChange,
) error {
	return a.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/change-password",
			AuthHeaders: a.BearerTokenAuthHeaders(),
			ReqBodyObj:  passwordChange,
			SuccessCode: http.StatusOK,
		},
	)
}
