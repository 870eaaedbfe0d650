package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of Inkwell",
	Action: logout,
}

func logout(c *cli.Context) error {
	manager, _, err := getSession(c)
	if err != nil {
		return err
	}
	// Client-side logout proceeds even if the server cannot be reached; the
	// outcome message only notes the failed notification.
	outcome := manager.Logout(c.Context)
	if outcome.Message != "" {
		fmt.Printf("\nLogout notification failed: %s\n", outcome.Message)
	}
	fmt.Println("\nYou are logged out.")
	return nil
}
