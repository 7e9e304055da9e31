package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUsersCommand(t *testing.T) {
	cmd := NewUsersCommand()
	assert.Equal(t, "users", cmd.Use)
	assert.Equal(t, []string{"user"}, cmd.Aliases)
	assert.Equal(t, "Manage users", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "whoami")
	assert.Contains(t, commandNames, "declare")
	assert.Contains(t, commandNames, "delete")
}

func TestUsersListCommand(t *testing.T) {
	cmd := newUsersListCommand()
	assert.Equal(t, "list", cmd.Use)
	assert.Equal(t, "List users", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	withoutPermissionsFlag := cmd.Flags().Lookup("without-permissions")
	assert.NotNil(t, withoutPermissionsFlag)
	assert.Equal(t, "false", withoutPermissionsFlag.DefValue)
}

func TestUsersDeclareCommand(t *testing.T) {
	cmd := newUsersDeclareCommand()
	assert.Equal(t, "declare NAME", cmd.Use)
	assert.Equal(t, []string{"create"}, cmd.Aliases)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	passwordFlag := cmd.Flags().Lookup("password")
	assert.NotNil(t, passwordFlag)
	assert.Equal(t, "p", passwordFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("password-hash"))
	assert.NotNil(t, cmd.Flags().Lookup("tags"))
}

func TestUsersDeleteCommand(t *testing.T) {
	cmd := newUsersDeleteCommand()
	assert.Equal(t, "delete NAME [NAME...]", cmd.Use)
	assert.Equal(t, "Delete one or more users", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("idempotently"))
}

func TestUsersWhoamiCommand(t *testing.T) {
	cmd := newUsersWhoamiCommand()
	assert.Equal(t, "whoami", cmd.Use)
	assert.Equal(t, "Show the authenticated user", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}
