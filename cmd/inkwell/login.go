package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell/api"
	"github.com/inkwellhq/inkwell/session"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to Inkwell",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Log into the API server at the specified address " +
				"(required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagEmail,
			Aliases: []string{"e"},
			Usage:   "Specify the email address to log in with",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Specify the password for non-interactive login",
		},
	},
	Action: login,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	email := c.String(flagEmail)
	password := c.String(flagPassword)

	if email == "" {
		prompt := &survey.Input{
			Message: "Email address",
		}
		if err := survey.AskOne(prompt, &email); err != nil {
			return err
		}
	}
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

	outcome := manager.Login(c.Context, email, password)
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
	fmt.Printf("\nYou are logged in as %s.\n", snapshot.User.Username)
	return nil
}
