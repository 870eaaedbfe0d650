package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell/api"
	"github.com/inkwellhq/inkwell/session"
)

func getClient(c *cli.Context) (api.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	return api.NewClient(
		config.APIAddress,
		"",
		c.Bool(flagInsecure),
	), nil
}

// getSession restores the stored session and returns both the manager and
// the API client carrying the restored credential.
func getSession(c *cli.Context) (*session.Manager, api.Client, error) {
	client, err := getClient(c)
	if err != nil {
		return nil, nil, err
	}
	tokenPath, err := getTokenPath()
	if err != nil {
		return nil, nil, err
	}
	manager := session.NewManager(client, session.NewFileTokenStore(tokenPath))
	manager.Start(c.Context)
	return manager, client, nil
}

// getAuthenticatedSession is getSession, but fails unless the restored
// session is authenticated.
func getAuthenticatedSession(
	c *cli.Context,
) (*session.Manager, api.Client, error) {
	manager, client, err := getSession(c)
	if err != nil {
		return nil, nil, err
	}
	snapshot := manager.Snapshot()
	if !snapshot.Authenticated {
		if snapshot.Err != "" {
			return nil, nil, errors.Errorf(
				"you are not logged in (%s); please use `inkwell login` to continue",
				snapshot.Err,
			)
		}
		return nil, nil, errors.New(
			"you are not logged in; please use `inkwell login` to continue",
		)
	}
	return manager, client, nil
}
