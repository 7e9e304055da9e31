package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHealthCommand(t *testing.T) {
	cmd := NewHealthCommand()
	assert.Equal(t, "health", cmd.Use)
	assert.Equal(t, "Run health checks", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "alarms")
	assert.Contains(t, commandNames, "local-alarms")
	assert.Contains(t, commandNames, "quorum-critical")
	assert.Contains(t, commandNames, "port-listener")
	assert.Contains(t, commandNames, "protocol-listener")
}

func TestHealthAlarmsCommand(t *testing.T) {
	cmd := newHealthAlarmsCommand()
	assert.Equal(t, "alarms", cmd.Use)
	assert.Equal(t, "Check for cluster-wide alarms", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestHealthPortListenerCommand(t *testing.T) {
	cmd := newHealthPortListenerCommand()
	assert.Equal(t, "port-listener PORT", cmd.Use)
	assert.Equal(t, "Check for an active listener on a port", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestHealthProtocolListenerCommand(t *testing.T) {
	cmd := newHealthProtocolListenerCommand()
	assert.Equal(t, "protocol-listener PROTOCOL", cmd.Use)
	assert.Equal(t, "Check for an active listener of a protocol", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}
