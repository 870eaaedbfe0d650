package api

import (
	"crypto/tls"
	"net/http"

	"github.com/inkwellhq/inkwell"
)

// Client is the general interface for the Inkwell API. It does little more
// than expose functions for obtaining more specialized clients for different
// areas of concern, like Blog management or User management. All of the
// specialized clients share one credential, so a token established through
// the AuthClient is immediately attached to every subsequent request.
type Client interface {
	// Auth returns a specialized client for authentication and session
	// management.
	Auth() AuthClient
	// Blogs returns a specialized client for Blog management.
	Blogs() BlogsClient
	// Users returns a specialized client for User management.
	Users() UsersClient
	// SetToken replaces the bearer credential attached to subsequent requests
	// issued by any of the specialized clients.
	SetToken(token string)
	// Token returns the bearer credential currently attached to requests.
	Token() string
	// OnUnauthenticated registers a callback invoked whenever any exchange is
	// rejected with an authentication failure.
	OnUnauthenticated(fn func(*inkwell.ErrAuthentication))
}

type client struct {
	baseClient *BaseClient
	// authClient is a specialized client for authentication and session
	// management.
	authClient AuthClient
	// blogsClient is a specialized client for Blog management.
	blogsClient BlogsClient
	// usersClient is a specialized client for User management.
	usersClient UsersClient
}

// NewClient returns an Inkwell client.
func NewClient(apiAddress, apiToken string, allowInsecure bool) Client {
	baseClient := &BaseClient{
		APIAddress: apiAddress,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: allowInsecure, // nolint: gosec
				},
			},
		},
	}
	baseClient.SetToken(apiToken)
	return &client{
		baseClient:  baseClient,
		authClient:  NewAuthClient(baseClient),
		blogsClient: NewBlogsClient(baseClient),
		usersClient: NewUsersClient(baseClient),
	}
}

func (c *client) Auth() AuthClient {
	return c.authClient
}

func (c *client) Blogs() BlogsClient {
	return c.blogsClient
}

func (c *client) Users() UsersClient {
	return c.usersClient
}

func (c *client) SetToken(token string) {
	c.baseClient.SetToken(token)
}

func (c *client) Token() string {
	return c.baseClient.Token()
}

func (c *client) OnUnauthenticated(fn func(*inkwell.ErrAuthentication)) {
	c.baseClient.OnUnauthenticated = fn
}
