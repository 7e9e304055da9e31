package commands_test

import (
	"testing"

	"github.com/michaelklishin/rabbitmq-http-api-go/cmd/rmqadmin/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewVirtualHostsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVirtualHostsCommand()
	assert.Equal(t, "vhosts", cmd.Use)
	assert.Equal(t, []string{"vhost"}, cmd.Aliases)
	assert.Equal(t, "Manage virtual hosts", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 6)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "declare")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "protect")
	assert.Contains(t, commandNames, "unprotect")
}

func TestVirtualHostsListCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewVirtualHostsCommand()
	cmd := findSubcommand(root, "list")
	assert.Equal(t, "list", cmd.Use)
	assert.Equal(t, "List virtual hosts", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestVirtualHostsDeclareCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewVirtualHostsCommand()
	cmd := findSubcommand(root, "declare")
	assert.Equal(t, "declare NAME", cmd.Use)
	assert.Equal(t, []string{"create"}, cmd.Aliases)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	for _, flagName := range []string{"description", "tag", "default-queue-type", "tracing"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	tracingFlag := cmd.Flags().Lookup("tracing")
	assert.Equal(t, "false", tracingFlag.DefValue)
}

func TestVirtualHostsDeleteCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewVirtualHostsCommand()
	cmd := findSubcommand(root, "delete")
	assert.Equal(t, "delete NAME", cmd.Use)
	assert.Equal(t, "Delete a virtual host", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)

	idempotentlyFlag := cmd.Flags().Lookup("idempotently")
	assert.NotNil(t, idempotentlyFlag)
	assert.Equal(t, "false", idempotentlyFlag.DefValue)
}

func TestVirtualHostsProtectCommands(t *testing.T) {
	t.Parallel()

	root := commands.NewVirtualHostsCommand()

	protect := findSubcommand(root, "protect")
	assert.Equal(t, "protect NAME", protect.Use)
	assert.NotNil(t, protect.RunE)
	assert.NotNil(t, protect.Args)

	unprotect := findSubcommand(root, "unprotect")
	assert.Equal(t, "unprotect NAME", unprotect.Use)
	assert.NotNil(t, unprotect.RunE)
	assert.NotNil(t, unprotect.Args)
}
