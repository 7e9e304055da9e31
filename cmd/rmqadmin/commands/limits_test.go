package commands_test

import (
	"testing"

	"github.com/michaelklishin/rabbitmq-http-api-go/cmd/rmqadmin/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewLimitsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLimitsCommand()
	assert.Equal(t, "limits", cmd.Use)
	assert.Equal(t, "Manage limits", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "user")
	assert.Contains(t, commandNames, "vhost")
}

func TestUserLimitsSubcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewLimitsCommand()
	user := findSubcommand(root, "user")

	commandNames := make([]string, 0, len(user.Commands()))
	for _, subcmd := range user.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "of")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "clear")

	set := findSubcommand(user, "set")
	assert.Equal(t, "set USERNAME", set.Use)
	assert.NotNil(t, set.RunE)
	assert.NotNil(t, set.Args)
	assert.NotNil(t, set.Flags().Lookup("kind"))
	assert.NotNil(t, set.Flags().Lookup("value"))
}

func TestVirtualHostLimitsSubcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewLimitsCommand()
	vhost := findSubcommand(root, "vhost")

	commandNames := make([]string, 0, len(vhost.Commands()))
	for _, subcmd := range vhost.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "list-in")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "clear")

	clear := findSubcommand(vhost, "clear")
	assert.Equal(t, "clear", clear.Use)
	assert.NotNil(t, clear.RunE)
	assert.NotNil(t, clear.Flags().Lookup("kind"))
}
