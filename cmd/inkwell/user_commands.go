package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell"
)

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "Manage users",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "Retrieve a user's public profile",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified user (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: userGet,
		},
		{
			Name:  "update",
			Usage: "Update your own profile",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagFullName,
					Usage: "Specify a new display name",
				},
				&cli.StringFlag{
					Name:  flagBio,
					Usage: "Specify a new bio",
				},
				&cli.StringFlag{
					Name:  flagAvatar,
					Usage: "Specify the URL of a new avatar image",
				},
			},
			Action: userUpdate,
		},
		{
			Name:   "change-password",
			Usage:  "Change your own password",
			Action: userChangePassword,
		},
	},
}

func userGet(c *cli.Context) error {
	id := c.String(flagID)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting inkwell client")
	}

	user, err := client.Users().Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "USERNAME", "NAME", "BIO", "JOINED")
		table.AddRow(
			user.ID,
			user.Username,
			user.FullName,
			user.Bio,
			user.Created,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(user)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get user operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get user operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func userUpdate(c *cli.Context) error {
	update := inkwell.UserUpdate{}
	if c.IsSet(flagFullName) {
		fullName := c.String(flagFullName)
		update.FullName = &fullName
	}
	if c.IsSet(flagBio) {
		bio := c.String(flagBio)
		update.Bio = &bio
	}
	if c.IsSet(flagAvatar) {
		avatar := c.String(flagAvatar)
		update.Avatar = &avatar
	}
	if update.FullName == nil && update.Bio == nil && update.Avatar == nil {
		return errors.Errorf(
			"at least one of --%s, --%s, or --%s must be specified",
			flagFullName,
			flagBio,
			flagAvatar,
		)
	}

	manager, _, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	outcome := manager.UpdateUser(c.Context, update)
	if !outcome.OK {
		return errors.New(outcome.Message)
	}

	fmt.Println("Profile updated.")
	return nil
}

func userChangePassword(c *cli.Context) error {
	manager, _, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	var currentPassword string
	if err := survey.AskOne(
		&survey.Password{
			Message: "Current password",
		},
		&currentPassword,
	); err != nil {
		return err
	}
	var newPassword string
	for {
		if err := survey.AskOne(
			&survey.Password{
				Message: "New password",
			},
			&newPassword,
		); err != nil {
			return err
		}
		if newPassword != "" {
			break
		}
	}

	outcome := manager.ChangePassword(c.Context, currentPassword, newPassword)
	if !outcome.OK {
		return errors.New(outcome.Message)
	}

	fmt.Println(outcome.Message)
	return nil
}
