package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/api"
	"github.com/inkwellhq/inkwell/session"
)

var registerCommand = &cli.Command{
	Name:  "register",
	Usage: "Create a new Inkwell account and log in as it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Register with the API server at the specified address " +
				"(required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagUsername,
			Aliases:  []string{"u"},
			Usage:    "Specify the username for the new account (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagEmail,
			Aliases:  []string{"e"},
			Usage:    "Specify the email address for the new account (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  flagFullName,
			Usage: "Specify the new account's display name",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Specify the password for non-interactive registration",
		},
	},
	Action: register,
}

func register(c *cli.Context) error {
	address := c.String(flagServer)
	password := c.String(flagPassword)

	for {
		if password != "" {
			break
		}
		prompt := &survey.Password{
			Message: "Password",
		}
		if err := survey.AskOne(prompt, &password); err != nil {
			return err
		}
	}

	client := api.NewClient(address, "", c.Bool(flagInsecure))
	tokenPath, err := getTokenPath()
	if err != nil {
		return err
	}
	manager := session.NewManager(client, session.NewFileTokenStore(tokenPath))

	outcome := manager.Register(
		c.Context,
		inkwell.Registration{
			Username: c.String(flagUsername),
			Email:    c.String(flagEmail),
			Password: password,
			FullName: c.String(flagFullName),
		},
	)
	if !outcome.OK {
		return errors.New(outcome.Message)
	}

	if err := saveConfig(
		&config{
			APIAddress: address,
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	snapshot := manager.Snapshot()
	fmt.Printf(
		"\nWelcome to Inkwell! You are logged in as %s.\n",
		snapshot.User.Username,
	)
	return nil
}
