package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMessagesCommand(t *testing.T) {
	cmd := NewMessagesCommand()
	assert.Equal(t, "messages", cmd.Use)
	assert.Equal(t, []string{"message"}, cmd.Aliases)
	assert.Equal(t, "Publish and consume messages", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "publish")
	assert.Contains(t, commandNames, "get")
}

func TestMessagesPublishCommand(t *testing.T) {
	cmd := newMessagesPublishCommand()
	assert.Equal(t, "publish", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	flags := []string{"exchange", "routing-key", "payload", "property"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "Flag %s should exist", flag)
	}
}

func TestMessagesGetCommand(t *testing.T) {
	cmd := newMessagesGetCommand()
	assert.Equal(t, "get QUEUE", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	countFlag := cmd.Flags().Lookup("count")
	assert.NotNil(t, countFlag)
	assert.Equal(t, "1", countFlag.DefValue)

	ackModeFlag := cmd.Flags().Lookup("ack-mode")
	assert.NotNil(t, ackModeFlag)
	assert.Equal(t, "ack_requeue_true", ackModeFlag.DefValue)
}
