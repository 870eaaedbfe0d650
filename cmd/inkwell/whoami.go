package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show the identity the stored credential resolves to",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: whoami,
}

func whoami(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	manager, _, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}
	user := manager.Snapshot().User

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "USERNAME", "EMAIL", "NAME", "JOINED")
		table.AddRow(
			user.ID,
			user.Username,
			user.Email,
			user.FullName,
			user.Created,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(user)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from whoami operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from whoami operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
