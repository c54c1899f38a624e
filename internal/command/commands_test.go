package command

import (
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	ui := cli.NewMockUi()
	m := Map(ui)

	assert.ElementsMatch(t, []string{"rtt", "simulate"}, Names())
	require.Len(t, m, 2)

	for name, factory := range m {
		cmd, err := factory()
		require.NoError(t, err, name)
		assert.NotEmpty(t, cmd.Synopsis(), name)
		assert.Contains(t, cmd.Help(), "Usage: vivaldi "+name, name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		Register("rtt", func(ui cli.Ui) (cli.Command, error) { return nil, nil })
	})
	assert.Equal(t, []string{"rtt", "simulate"}, Names())
}
