package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	t.Cleanup(func() { versionCmd.Flags().Set("short", "false") })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:      "+Version)
	assert.Contains(t, out, "Git Commit:")
	assert.Contains(t, out, "OS/Arch:")

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version, strings.TrimSpace(out))
}
