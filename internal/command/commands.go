// Package command wires the vivaldi subcommands into a mitchellh/cli
// command map.
package command

import (
	"fmt"
	"slices"

	"github.com/hupe1980/vivaldi/internal/command/rtt"
	"github.com/hupe1980/vivaldi/internal/command/simulate"
	"github.com/mitchellh/cli"
)

func init() {
	Register("rtt", func(ui cli.Ui) (cli.Command, error) { return rtt.New(ui), nil })
	Register("simulate", func(ui cli.Ui) (cli.Command, error) { return simulate.New(ui), nil })
}

// Factory creates a command writing to ui.
type Factory func(cli.Ui) (cli.Command, error)

var registry map[string]Factory

// Register adds a command under name. It panics if name is taken.
func Register(name string, fn Factory) {
	if registry == nil {
		registry = make(map[string]Factory)
	}

	if registry[name] != nil {
		panic(fmt.Errorf("command %q is already registered", name))
	}
	registry[name] = fn
}

// Map returns the command factories bound to ui.
func Map(ui cli.Ui) map[string]cli.CommandFactory {
	m := make(map[string]cli.CommandFactory, len(registry))
	for name, fn := range registry {
		m[name] = func() (cli.Command, error) {
			return fn(ui)
		}
	}
	return m
}

// Names returns the registered command names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
