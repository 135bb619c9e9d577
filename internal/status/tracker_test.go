package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
)

func TestNewTrackerStartsChecking(t *testing.T) {
	tr := NewTracker()
	for _, tool := range registry.List() {
		assert.Equal(t, models.StatusChecking, tr.Status(tool.ID))
	}
}

func TestStartStopLifecycle(t *testing.T) {
	tr := NewTracker()
	tr.ApplyReport(nil)

	seq := tr.RequestStart("desk-talk")
	assert.Equal(t, models.StatusStarting, tr.Status("desk-talk"))
	assert.True(t, tr.Pending("desk-talk"))

	tr.Resolve("desk-talk", seq, nil)
	assert.Equal(t, models.StatusRunning, tr.Status("desk-talk"))
	assert.False(t, tr.Pending("desk-talk"))

	seq = tr.RequestStop("desk-talk")
	assert.Equal(t, models.StatusStopping, tr.Status("desk-talk"))

	tr.Resolve("desk-talk", seq, nil)
	assert.Equal(t, models.StatusStopped, tr.Status("desk-talk"))
}

func TestFailedStartRollsBack(t *testing.T) {
	tr := NewTracker()
	tr.ApplyReport(nil)

	seq := tr.RequestStart("ocr-paste")
	tr.Resolve("ocr-paste", seq, errors.New("binary not found"))
	assert.Equal(t, models.StatusStopped, tr.Status("ocr-paste"))
}

func TestFailedStopRollsBackToRunning(t *testing.T) {
	tr := NewTracker()
	tr.ApplyReport(map[string]bool{"typo-fix": true})
	require.Equal(t, models.StatusRunning, tr.Status("typo-fix"))

	seq := tr.RequestStop("typo-fix")
	tr.Resolve("typo-fix", seq, errors.New("kill failed"))
	assert.Equal(t, models.StatusRunning, tr.Status("typo-fix"))
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	tr := NewTracker()
	tr.ApplyReport(nil)

	seq1 := tr.RequestStart("speak-selected")
	seq2 := tr.RequestStop("speak-selected")
	require.NotEqual(t, seq1, seq2)

	// The start finishes after the stop superseded it. Its result must not
	// be applied.
	tr.Resolve("speak-selected", seq1, nil)
	assert.Equal(t, models.StatusStopping, tr.Status("speak-selected"))

	tr.Resolve("speak-selected", seq2, nil)
	assert.Equal(t, models.StatusStopped, tr.Status("speak-selected"))

	// A second completion for an already-resolved sequence is a no-op.
	tr.Resolve("speak-selected", seq2, errors.New("late duplicate"))
	assert.Equal(t, models.StatusStopped, tr.Status("speak-selected"))
}

func TestReportOverwritesWholesale(t *testing.T) {
	tr := NewTracker()
	tr.ApplyReport(map[string]bool{"desk-talk": true, "flatten-string": true})

	assert.Equal(t, models.StatusRunning, tr.Status("desk-talk"))
	assert.Equal(t, models.StatusRunning, tr.Status("flatten-string"))
	assert.Equal(t, models.StatusStopped, tr.Status("typo-fix"))

	// A later report missing a tool means it stopped.
	tr.ApplyReport(map[string]bool{"desk-talk": true})
	assert.Equal(t, models.StatusStopped, tr.Status("flatten-string"))
}

func TestReportKeepsOptimisticStatusForInflightCommands(t *testing.T) {
	tr := NewTracker()
	tr.ApplyReport(nil)

	seq := tr.RequestStart("quick-assistant")
	// A poll lands while the start is still in flight and doesn't see the
	// process yet. The optimistic Starting... must survive.
	tr.ApplyReport(nil)
	assert.Equal(t, models.StatusStarting, tr.Status("quick-assistant"))

	tr.Resolve("quick-assistant", seq, nil)
	assert.Equal(t, models.StatusRunning, tr.Status("quick-assistant"))
}

func TestFailAllStopsEverything(t *testing.T) {
	tr := NewTracker()
	tr.FailAll()
	for _, tool := range registry.List() {
		assert.Equal(t, models.StatusStopped, tr.Status(tool.ID))
	}
}

func TestCanStart(t *testing.T) {
	speak, _ := registry.Find("speak-selected")
	flatten, _ := registry.Find("flatten-string")
	desktalk, _ := registry.Find("desk-talk")

	hk := "F14"
	tests := []struct {
		name       string
		tool       registry.Tool
		cfg        models.ToolConfig
		authorized bool
		hasKey     bool
		want       bool
		reason     string
	}{
		{
			name:   "unauthorized blocks everything",
			tool:   flatten,
			cfg:    models.ToolConfig{Enabled: true, Hotkey: &hk},
			reason: "Start a trial or activate a license",
		},
		{
			name:       "disabled tool",
			tool:       desktalk,
			cfg:        models.ToolConfig{Enabled: false},
			authorized: true,
			hasKey:     true,
			reason:     "Enable the tool first",
		},
		{
			name:       "hotkey tool without hotkey",
			tool:       flatten,
			cfg:        models.ToolConfig{Enabled: true},
			authorized: true,
			reason:     "Select a hotkey first",
		},
		{
			name:       "api key tool without key",
			tool:       speak,
			cfg:        models.ToolConfig{Enabled: true, Hotkey: &hk},
			authorized: true,
			reason:     "Set API key in Settings first",
		},
		{
			name:       "hotkey check precedes api key check",
			tool:       speak,
			cfg:        models.ToolConfig{Enabled: true},
			authorized: true,
			reason:     "Select a hotkey first",
		},
		{
			name:       "flatten-string needs no api key",
			tool:       flatten,
			cfg:        models.ToolConfig{Enabled: true, Hotkey: &hk},
			authorized: true,
			want:       true,
		},
		{
			name:       "gui tool with key is startable",
			tool:       desktalk,
			cfg:        models.ToolConfig{Enabled: true},
			authorized: true,
			hasKey:     true,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CanStart(tt.tool, tt.cfg, tt.authorized, tt.hasKey)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
