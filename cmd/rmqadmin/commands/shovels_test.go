package commands_test

import (
	"testing"

	"github.com/michaelklishin/rabbitmq-http-api-go/cmd/rmqadmin/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewShovelsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewShovelsCommand()
	assert.Equal(t, "shovels", cmd.Use)
	assert.Equal(t, []string{"shovel"}, cmd.Aliases)
	assert.Equal(t, "Manage shovels", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "list-in")
	assert.Contains(t, commandNames, "declare-amqp091")
	assert.Contains(t, commandNames, "declare-amqp10")
	assert.Contains(t, commandNames, "delete")
}

func TestShovelsDeclareAmqp091Command(t *testing.T) {
	t.Parallel()

	root := commands.NewShovelsCommand()
	cmd := findSubcommand(root, "declare-amqp091")
	assert.Equal(t, "declare-amqp091 NAME", cmd.Use)
	assert.Equal(t, "Declare an AMQP 0-9-1 shovel", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	flags := []string{
		"source-uri", "source-queue", "source-exchange", "source-exchange-routing-key",
		"destination-uri", "destination-queue", "destination-exchange",
		"destination-exchange-routing-key", "ack-mode", "predeclared",
	}

	for _, flagName := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	ackModeFlag := cmd.Flags().Lookup("ack-mode")
	assert.Equal(t, "on-confirm", ackModeFlag.DefValue)
}

func TestShovelsDeclareAmqp10Command(t *testing.T) {
	t.Parallel()

	root := commands.NewShovelsCommand()
	cmd := findSubcommand(root, "declare-amqp10")
	assert.Equal(t, "declare-amqp10 NAME", cmd.Use)
	assert.Equal(t, "Declare an AMQP 1.0 shovel", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	for _, flagName := range []string{"source-uri", "source-address", "destination-uri", "destination-address"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestShovelsDeleteCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewShovelsCommand()
	cmd := findSubcommand(root, "delete")
	assert.Equal(t, "delete NAME", cmd.Use)
	assert.Equal(t, "Delete a shovel", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("idempotently"))
}
