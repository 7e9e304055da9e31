package commands_test

import (
	"testing"

	"github.com/michaelklishin/rabbitmq-http-api-go/cmd/rmqadmin/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewConnectionsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConnectionsCommand()
	assert.Equal(t, "connections", cmd.Use)
	assert.Equal(t, []string{"connection"}, cmd.Aliases)
	assert.Equal(t, "Inspect and close client connections", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 8)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "list-in")
	assert.Contains(t, commandNames, "of-user")
	assert.Contains(t, commandNames, "list-stream")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "get-stream")
	assert.Contains(t, commandNames, "close")
	assert.Contains(t, commandNames, "close-user")
}

func TestConnectionsListStreamCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewConnectionsCommand()
	cmd := findSubcommand(root, "list-stream")
	assert.Equal(t, "list-stream", cmd.Use)
	assert.Equal(t, "List stream protocol connections", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	inVhostFlag := cmd.Flags().Lookup("in-vhost")
	assert.NotNil(t, inVhostFlag)
	assert.Equal(t, "false", inVhostFlag.DefValue)
}

func TestConnectionsCloseCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewConnectionsCommand()
	cmd := findSubcommand(root, "close")
	assert.Equal(t, "close NAME", cmd.Use)
	assert.Equal(t, "Close a client connection", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	reasonFlag := cmd.Flags().Lookup("reason")
	assert.NotNil(t, reasonFlag)
	assert.Equal(t, "closed by management CLI", reasonFlag.DefValue)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("idempotently"))
}

func TestConnectionsCloseUserCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewConnectionsCommand()
	cmd := findSubcommand(root, "close-user")
	assert.Equal(t, "close-user USERNAME", cmd.Use)
	assert.Equal(t, "Close all connections of a user", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
	assert.NotNil(t, cmd.Flags().Lookup("reason"))
}
