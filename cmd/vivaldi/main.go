// Command vivaldi simulates and inspects Vivaldi network coordinates.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/vivaldi/internal/command"
	"github.com/mitchellh/cli"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	ui := &cli.BasicUi{Writer: os.Stdout, ErrorWriter: os.Stderr}

	c := &cli.CLI{
		Name:         "vivaldi",
		Args:         args,
		Commands:     command.Map(ui),
		Autocomplete: true,
		HelpFunc:     cli.FilteredHelpFunc(command.Names(), cli.BasicHelpFunc("vivaldi")),
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err.Error())
		return 1
	}
	return exitCode
}
