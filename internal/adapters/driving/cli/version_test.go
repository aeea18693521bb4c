package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()
	SetVersion("1.2.3")

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "echo version 1.2.3")
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()
	version = "dev"

	SetVersion("")

	assert.Equal(t, "dev", version)
}
