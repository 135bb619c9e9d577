package proc

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
)

// writeScript drops an executable shell script and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are unix-only")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func testManager(t *testing.T, script string) *Manager {
	t.Helper()
	m := NewManager()
	m.resolveBinary = func(registry.Tool) (string, error) {
		return script, nil
	}
	return m
}

func TestStartAndStop(t *testing.T) {
	script := writeScript(t, "sleep 30")
	m := testManager(t, script)
	tool, _ := registry.Find("flatten-string")
	hk := "F13"
	tc := models.ToolConfig{Enabled: true, Hotkey: &hk}

	require.NoError(t, m.Start(tool, tc))
	assert.True(t, m.Running(tool.ID))

	// Starting again is a no-op, not an error.
	require.NoError(t, m.Start(tool, tc))

	require.NoError(t, m.Stop(tool))
	assert.False(t, m.Running(tool.ID))

	// Stopping a stopped tool is an error.
	assert.Error(t, m.Stop(tool))
}

func TestStartReportsEarlyExitStderr(t *testing.T) {
	script := writeScript(t, "echo 'bad flag: --trigger-key' >&2\nexit 2")
	m := testManager(t, script)
	tool, _ := registry.Find("flatten-string")
	hk := "F13"

	err := m.Start(tool, models.ToolConfig{Enabled: true, Hotkey: &hk})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad flag")
	assert.False(t, m.Running(tool.ID))
}

func TestRefreshDropsExitedProcesses(t *testing.T) {
	script := writeScript(t, "sleep 1")
	m := testManager(t, script)
	tool, _ := registry.Find("flatten-string")
	hk := "F13"

	require.NoError(t, m.Start(tool, models.ToolConfig{Enabled: true, Hotkey: &hk}))
	assert.True(t, m.Refresh()[tool.ID])

	// The script exits on its own; Refresh must notice without a scan.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if !m.Refresh()[tool.ID] {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("Refresh still reports an exited process as running")
}

func TestParsePSOutput(t *testing.T) {
	out := "COMM              PID\n" +
		"systemd             1\n" +
		"desk-talk        4242\n" +
		"/usr/bin/ocrp    5151\n" +
		"StrFlatten       6161\n" +
		"garbage line\n"

	got := parsePSOutput(out)
	assert.Equal(t, 4242, got["desk-talk"])
	assert.Equal(t, 5151, got["ocrp"], "paths reduce to base names")
	assert.Equal(t, 6161, got["strflatten"], "names are lowercased")
	_, ok := got["garbage"]
	assert.False(t, ok)
}

func TestParseTasklistCSV(t *testing.T) {
	out := "\"System Idle Process\",\"0\",\"Services\",\"0\",\"8 K\"\n" +
		"\"desk-talk.exe\",\"4242\",\"Console\",\"1\",\"24,312 K\"\n" +
		"\"OCRP.EXE\",\"5151\",\"Console\",\"1\",\"10,000 K\"\n" +
		"\n"

	got := parseTasklistCSV(out)
	assert.Equal(t, 4242, got["desk-talk.exe"])
	assert.Equal(t, 5151, got["ocrp.exe"])
}

func TestFullScanAdoptsAndReleasesExternal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix process table")
	}
	m := NewManager()

	// Fake a previously adopted PID that no longer shows up in the table.
	m.external["desk-talk"] = 999999
	m.reconcile(map[string]int{"strflatten": 6161})

	assert.False(t, m.Running("desk-talk"))
	assert.True(t, m.Running("flatten-string"))
	assert.Equal(t, 6161, m.external["flatten-string"])
}
