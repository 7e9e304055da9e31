package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFederationCommand(t *testing.T) {
	cmd := NewFederationCommand()
	assert.Equal(t, "federation", cmd.Use)
	assert.Equal(t, "Manage federation upstreams and links", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 6)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list-upstreams")
	assert.Contains(t, commandNames, "get-upstream")
	assert.Contains(t, commandNames, "declare-queue-upstream")
	assert.Contains(t, commandNames, "declare-exchange-upstream")
	assert.Contains(t, commandNames, "delete-upstream")
	assert.Contains(t, commandNames, "list-links")
}

func TestFederationDeclareQueueUpstreamCommand(t *testing.T) {
	cmd := newFederationDeclareQueueUpstreamCommand()
	assert.Equal(t, "declare-queue-upstream NAME", cmd.Use)
	assert.Equal(t, "Declare a queue federation upstream", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	for _, flagName := range []string{"uri", "queue", "consumer-tag", "ack-mode"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	ackModeFlag := cmd.Flags().Lookup("ack-mode")
	assert.Equal(t, "on-confirm", ackModeFlag.DefValue)
}

func TestFederationDeclareExchangeUpstreamCommand(t *testing.T) {
	cmd := newFederationDeclareExchangeUpstreamCommand()
	assert.Equal(t, "declare-exchange-upstream NAME", cmd.Use)
	assert.Equal(t, "Declare an exchange federation upstream", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	flags := []string{
		"uri", "exchange", "max-hops", "queue-type", "expires",
		"message-ttl", "resource-cleanup-mode", "ack-mode",
	}

	for _, flagName := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	queueTypeFlag := cmd.Flags().Lookup("queue-type")
	assert.Equal(t, "classic", queueTypeFlag.DefValue)

	cleanupModeFlag := cmd.Flags().Lookup("resource-cleanup-mode")
	assert.Equal(t, "default", cleanupModeFlag.DefValue)
}

func TestFederationDeleteUpstreamCommand(t *testing.T) {
	cmd := newFederationDeleteUpstreamCommand()
	assert.Equal(t, "delete-upstream NAME", cmd.Use)
	assert.Equal(t, "Delete a federation upstream", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("idempotently"))
}
