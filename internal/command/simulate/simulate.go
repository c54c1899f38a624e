package simulate

import (
	"flag"
	"fmt"

	"github.com/hupe1980/vivaldi/internal/command/flags"
	"github.com/hupe1980/vivaldi/internal/sim"
	"github.com/hupe1980/vivaldi/vector"
	"github.com/mitchellh/cli"
	"github.com/ryanuber/columnize"
)

func New(ui cli.Ui) *cmd {
	c := &cmd{UI: ui}
	c.init()
	return c
}

type cmd struct {
	UI    cli.Ui
	flags *flag.FlagSet
	help  string

	topology  string
	rounds    int
	dimension int
	seed      uint64
}

func (c *cmd) init() {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.topology, "topology", "",
		"Path to a JSON topology. Defaults to two small data centres.")
	c.flags.IntVar(&c.rounds, "rounds", 50,
		"Number of observation rounds.")
	c.flags.IntVar(&c.dimension, "dimension", 3,
		"Dimensionality of the coordinates, 2 or 3.")
	c.flags.Uint64Var(&c.seed, "seed", 1,
		"Seed for the random sources of the models.")
	c.help = flags.Usage(help, c.flags)
}

func (c *cmd) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}
	if len(c.flags.Args()) > 0 {
		c.UI.Error("This command takes no arguments")
		c.UI.Error("")
		c.UI.Error(c.Help())
		return 1
	}
	if c.rounds < 1 {
		c.UI.Error("The number of rounds must be positive")
		return 1
	}

	topo := sim.DefaultTopology()
	if c.topology != "" {
		var err error
		if topo, err = sim.LoadTopology(c.topology); err != nil {
			c.UI.Error(fmt.Sprintf("Error loading topology: %s", err))
			return 1
		}
	}

	var (
		rows []sim.ReportRow
		err  error
	)
	switch c.dimension {
	case 2:
		rows, err = simulate[vector.Dimension2](topo, c.seed, c.rounds)
	case 3:
		rows, err = simulate[vector.Dimension3](topo, c.seed, c.rounds)
	default:
		c.UI.Error(fmt.Sprintf("Unsupported dimension %d, expected 2 or 3", c.dimension))
		return 1
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error running simulation: %s", err))
		return 1
	}

	c.UI.Output(formatReport(rows))
	c.UI.Output("")
	c.UI.Output(fmt.Sprintf("Simulated %d rounds on %d nodes in %d dimensions", c.rounds, len(topo.Nodes), c.dimension))
	return 0
}

func simulate[V vector.Vector[V]](topo sim.Topology, seed uint64, rounds int) ([]sim.ReportRow, error) {
	n, err := sim.NewNetwork[V](topo, seed)
	if err != nil {
		return nil, err
	}
	if err := n.Run(rounds); err != nil {
		return nil, err
	}
	return n.Report(), nil
}

func formatReport(rows []sim.ReportRow) string {
	result := make([]string, 0, len(rows)+1)
	result = append(result, "Node A|Node B|Actual|Estimated|Error|Path")
	for _, r := range rows {
		path := "measured"
		if r.Indirect {
			path = "indirect"
		}
		result = append(result, fmt.Sprintf("%s|%s|%.3f ms|%.3f ms|%.1f%%|%s",
			r.A, r.B,
			r.Actual.Seconds()*1000.0,
			r.Estimated.Seconds()*1000.0,
			r.RelativeError*100.0,
			path))
	}
	return columnize.SimpleFormat(result)
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

const synopsis = "Simulates coordinate convergence on a synthetic network"
const help = `
Usage: vivaldi simulate [options]

  Runs one Vivaldi model per node of a synthetic network and reports how
  well the resulting coordinates predict the true round trip times.

  Every round, the two ends of each measured link observe each other once.
  Links marked "indirect" in the topology are never measured; their rows
  show how well the model estimates paths between nodes that never talked.

  A topology is a JSON document of the form:

      {
        "nodes": ["a", "b", "c"],
        "links": [
          {"a": "a", "b": "b", "rtt": 10},
          {"a": "b", "b": "c", "rtt": 25},
          {"a": "a", "b": "c", "rtt": 30, "indirect": true}
        ]
      }

  with round trip times in milliseconds.
`
