package simulate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCommand_noTabs(t *testing.T) {
	if strings.ContainsRune(New(cli.NewMockUi()).Help(), '\t') {
		t.Fatal("help has tabs")
	}
}

func TestSimulateCommand_Default(t *testing.T) {
	ui := cli.NewMockUi()
	c := New(ui)

	code := c.Run([]string{"-rounds", "20"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "Node A")
	assert.Contains(t, out, "dc1-a")
	assert.Contains(t, out, "indirect")
	assert.Contains(t, out, "Simulated 20 rounds on 4 nodes in 3 dimensions")
}

func TestSimulateCommand_Topology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.json")
	topo := `{"nodes":["x","y"],"links":[{"a":"x","b":"y","rtt":1000}]}`
	require.NoError(t, os.WriteFile(path, []byte(topo), 0o600))

	ui := cli.NewMockUi()
	c := New(ui)

	code := c.Run([]string{"-topology", path, "-dimension", "2", "-rounds", "10", "-seed", "3"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "1000.000 ms")
	assert.Contains(t, out, "measured")
	assert.Contains(t, out, "Simulated 10 rounds on 2 nodes in 2 dimensions")
}

func TestSimulateCommand_Reproducible(t *testing.T) {
	run := func() string {
		ui := cli.NewMockUi()
		require.Equal(t, 0, New(ui).Run([]string{"-seed", "9", "-rounds", "5"}))
		return ui.OutputWriter.String()
	}
	assert.Equal(t, run(), run())
}

func TestSimulateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad dimension", []string{"-dimension", "4"}, "Unsupported dimension 4"},
		{"bad rounds", []string{"-rounds", "0"}, "must be positive"},
		{"extra args", []string{"foo"}, "takes no arguments"},
		{"missing topology", []string{"-topology", filepath.Join(os.TempDir(), "does-not-exist.json")}, "Error loading topology"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := cli.NewMockUi()
			c := New(ui)

			assert.Equal(t, 1, c.Run(tt.args))
			assert.Contains(t, ui.ErrorWriter.String(), tt.want)
		})
	}
}
