package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell/internal/signals"
	"github.com/inkwellhq/inkwell/internal/version"
)

func main() {
	app := cli.NewApp()
	app.Name = "inkwell"
	app.Usage = "Read and write Inkwell blogs from the command line"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		blogCommand,
		loginCommand,
		logoutCommand,
		registerCommand,
		userCommand,
		whoamiCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
