package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFeatureFlagsCommand(t *testing.T) {
	cmd := NewFeatureFlagsCommand()
	assert.Equal(t, "feature-flags", cmd.Use)
	assert.Equal(t, []string{"feature-flag"}, cmd.Aliases)
	assert.Equal(t, "Manage feature flags", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "enable")
	assert.Contains(t, commandNames, "enable-all-stable")
}

func TestFeatureFlagsEnableCommand(t *testing.T) {
	cmd := newFeatureFlagsEnableCommand()
	assert.Equal(t, "enable NAME", cmd.Use)
	assert.Equal(t, "Enable a feature flag", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestNewDeprecatedFeaturesCommand(t *testing.T) {
	cmd := NewDeprecatedFeaturesCommand()
	assert.Equal(t, "deprecated-features", cmd.Use)
	assert.Equal(t, "Inspect deprecated features", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "list-used")
}
