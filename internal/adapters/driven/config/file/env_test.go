package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvPaths(t *testing.T) {
	paths := EnvPaths("/etc/echo")
	assert.Equal(t, []string{".env", filepath.Join("/etc/echo", ".env")}, paths)
}

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	loaded, err := LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadEnv_DoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("ECHO_TEST_A=first\n"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("ECHO_TEST_A=second\nECHO_TEST_B=second\n"), 0600))

	t.Setenv("ECHO_TEST_B", "process")
	t.Setenv("ECHO_TEST_A", "")
	require.NoError(t, os.Unsetenv("ECHO_TEST_A"))

	loaded, err := LoadEnv(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, loaded)

	assert.Equal(t, "first", os.Getenv("ECHO_TEST_A"))
	assert.Equal(t, "process", os.Getenv("ECHO_TEST_B"))
}

func TestLoadEnv_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.env")
	require.NoError(t, os.WriteFile(path, []byte("=novalue\n"), 0600))

	_, err := LoadEnv(path)
	assert.Error(t, err)
}
