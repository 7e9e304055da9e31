package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefinitionsCommand(t *testing.T) {
	cmd := NewDefinitionsCommand()
	assert.Equal(t, "definitions", cmd.Use)
	assert.Equal(t, "Export and import definitions", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "export")
	assert.Contains(t, commandNames, "export-from-vhost")
	assert.Contains(t, commandNames, "import")
	assert.Contains(t, commandNames, "import-into-vhost")
}

func TestDefinitionsExportCommand(t *testing.T) {
	cmd := newDefinitionsExportCommand()
	assert.Equal(t, "export", cmd.Use)
	assert.Equal(t, "Export cluster-wide definitions", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	fileFlag := cmd.Flags().Lookup("file")
	assert.NotNil(t, fileFlag)
	assert.Equal(t, "-", fileFlag.DefValue)

	assert.NotNil(t, cmd.Flags().Lookup("transformations"))
}

func TestDefinitionsImportCommand(t *testing.T) {
	cmd := newDefinitionsImportCommand()
	assert.Equal(t, "import", cmd.Use)
	assert.Equal(t, "Import cluster-wide definitions", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	fileFlag := cmd.Flags().Lookup("file")
	assert.NotNil(t, fileFlag)
	assert.Equal(t, "-", fileFlag.DefValue)
}
