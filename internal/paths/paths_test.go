package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	flagDir := t.TempDir()
	envDir := t.TempDir()

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, envDir)
		got, err := ResolveConfigDir(flagDir)
		require.NoError(t, err)
		assert.Equal(t, flagDir, got)
	})

	t.Run("env wins over default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, envDir)
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, envDir, got)
	})

	t.Run("default when nothing set", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "svcledger", filepath.Base(got))
	})
}

func TestResolveConfigDirRelativeFlag(t *testing.T) {
	got, err := ResolveConfigDir("relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "config", filepath.Base(got))
}

func TestDefaultConfigDirLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-specific XDG behavior")
	}

	t.Run("XDG set", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(xdg, "svcledger"), got)
	})

	t.Run("XDG unset falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		restore := platformDir.homeDir
		platformDir.homeDir = func() (string, error) { return "/home/tester", nil }
		defer func() { platformDir.homeDir = restore }()

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/tester", ".config", "svcledger"), got)
	})
}

func TestResolveDataDirPrecedence(t *testing.T) {
	flagDir := t.TempDir()
	yamlDir := t.TempDir()
	envDir := t.TempDir()

	t.Run("flag wins over everything", func(t *testing.T) {
		t.Setenv(EnvDataDir, envDir)
		got, err := ResolveDataDir(flagDir, yamlDir)
		require.NoError(t, err)
		assert.Equal(t, flagDir, got)
	})

	t.Run("config value wins over env", func(t *testing.T) {
		t.Setenv(EnvDataDir, envDir)
		got, err := ResolveDataDir("", yamlDir)
		require.NoError(t, err)
		assert.Equal(t, yamlDir, got)
	})

	t.Run("env wins over cwd default", func(t *testing.T) {
		t.Setenv(EnvDataDir, envDir)
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, envDir, got)
	})

	t.Run("cwd default when nothing set", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultDataDirName, filepath.Base(got))
		assert.True(t, filepath.IsAbs(got))
	})
}
