package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext_HonorsFnordHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FNORD_HOME", home)

	ctx, err := NewContext()
	require.NoError(t, err)
	assert.Equal(t, home, ctx.Home)
	assert.Equal(t, filepath.Join(home, "settings.json"), ctx.SettingsPath())
	assert.Equal(t, filepath.Join(home, "projects", "demo"), ctx.ProjectStorePath("demo"))
}

func TestNewContext_DefaultsToDotFnord(t *testing.T) {
	t.Setenv("FNORD_HOME", "")

	ctx, err := NewContext()
	require.NoError(t, err)
	userHome, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, ".fnord"), ctx.Home)
}

func TestGetConfigValue_EnvWinsOverFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FNORD_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("FNORD_TEST_KEY=from-file\n"), 0o644))

	ctx, err := NewContext()
	require.NoError(t, err)

	t.Setenv("FNORD_TEST_KEY", "from-env")
	got, err := ctx.GetConfigValue("FNORD_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	t.Setenv("FNORD_TEST_KEY", "")
	got, err = ctx.GetConfigValue("FNORD_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)
}

func TestGetConfigValue_MissingEverywhere(t *testing.T) {
	t.Setenv("FNORD_HOME", t.TempDir())

	ctx, err := NewContext()
	require.NoError(t, err)
	got, err := ctx.GetConfigValue("FNORD_DOES_NOT_EXIST")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/projects")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects"), got)

	got, err = ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)
}
