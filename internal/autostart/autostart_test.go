package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncInstallsAndRemovesEntry(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("login entry is registry-backed on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	require.NoError(t, Sync(true))

	path, err := entryPath()
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "tray"),
		"login entry must launch the tray")

	require.NoError(t, Sync(false))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Removing an absent entry stays a no-op.
	require.NoError(t, Remove())
}

func TestInstallIsIdempotent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("login entry is registry-backed on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	require.NoError(t, Install())
	require.NoError(t, Install())

	path, err := entryPath()
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
