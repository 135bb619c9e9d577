package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
)

func strPtr(s string) *string   { return &s }
func u32Ptr(v uint32) *uint32   { return &v }
func f64Ptr(v float64) *float64 { return &v }

func TestRebuildFillsEveryTool(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["desk-talk"] = models.ToolConfig{Enabled: false, AutoStart: true}

	next := Rebuild(prev, nil)

	require.Len(t, next.Tools, len(registry.List()))
	for _, tool := range registry.List() {
		_, ok := next.Tools[tool.ID]
		assert.True(t, ok, "missing entry for %s", tool.ID)
	}
	// Existing entries keep their values, new ones get defaults.
	assert.False(t, next.Tools["desk-talk"].Enabled)
	assert.True(t, next.Tools["desk-talk"].AutoStart)
	assert.True(t, next.Tools["ocr-paste"].Enabled)
	assert.False(t, next.Tools["ocr-paste"].AutoStart)
}

func TestRebuildDoesNotMutatePrev(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["typo-fix"] = models.ToolConfig{Enabled: true, Hotkey: strPtr("F9")}

	next := SetToolHotkey(prev, "typo-fix", "F10")

	assert.Equal(t, "F9", *prev.Tools["typo-fix"].Hotkey)
	assert.Equal(t, "F10", *next.Tools["typo-fix"].Hotkey)
}

func TestSpeechSpeedEditPreservesVoice(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["quick-assistant"] = models.ToolConfig{
		Enabled: true,
		Hotkey:  strPtr("F15"),
		Voice:   strPtr("onyx"),
	}

	next := SetToolSpeechSpeed(prev, "quick-assistant", f64Ptr(1.5))

	tc := next.Tools["quick-assistant"]
	require.NotNil(t, tc.Voice)
	assert.Equal(t, "onyx", *tc.Voice)
	require.NotNil(t, tc.SpeechSpeed)
	assert.Equal(t, 1.5, *tc.SpeechSpeed)
	require.NotNil(t, tc.Hotkey)
	assert.Equal(t, "F15", *tc.Hotkey)
}

func TestEditingOneToolLeavesOthersAlone(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["speak-selected"] = models.ToolConfig{Enabled: true, Hotkey: strPtr("F14"), Voice: strPtr("nova")}
	prev.Tools["flatten-string"] = models.ToolConfig{Enabled: false, Hotkey: strPtr("F13")}

	next := SetToolEnabled(prev, "speak-selected", false)

	assert.False(t, next.Tools["speak-selected"].Enabled)
	flat := next.Tools["flatten-string"]
	assert.False(t, flat.Enabled)
	require.NotNil(t, flat.Hotkey)
	assert.Equal(t, "F13", *flat.Hotkey)
}

func TestSetToolHotkey(t *testing.T) {
	tests := []struct {
		name        string
		start       models.ToolConfig
		hotkey      string
		wantHotkey  *string
		wantSpecial *uint32
	}{
		{
			name:       "assign named key",
			start:      models.ToolConfig{Enabled: true},
			hotkey:     "F13",
			wantHotkey: strPtr("F13"),
		},
		{
			name:       "named key clears special code",
			start:      models.ToolConfig{Enabled: true, SpecialHotkey: u32Ptr(125)},
			hotkey:     "F14",
			wantHotkey: strPtr("F14"),
		},
		{
			name:        "empty string clears the hotkey",
			start:       models.ToolConfig{Enabled: true, Hotkey: strPtr("F13"), SpecialHotkey: u32Ptr(9)},
			hotkey:      "",
			wantSpecial: u32Ptr(9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := models.NewHubConfig()
			prev.Tools["flatten-string"] = tt.start

			tc := SetToolHotkey(prev, "flatten-string", tt.hotkey).Tools["flatten-string"]
			assert.Equal(t, tt.wantHotkey, tc.Hotkey)
			assert.Equal(t, tt.wantSpecial, tc.SpecialHotkey)
		})
	}
}

func TestSetToolSpecialHotkeyClearsNamed(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["ocr-paste"] = models.ToolConfig{Enabled: true, Hotkey: strPtr("F13")}

	tc := SetToolSpecialHotkey(prev, "ocr-paste", 200).Tools["ocr-paste"]
	assert.Nil(t, tc.Hotkey)
	require.NotNil(t, tc.SpecialHotkey)
	assert.Equal(t, uint32(200), *tc.SpecialHotkey)
}

func TestSetToolVoiceEmptyClears(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["speak-selected"] = models.ToolConfig{Enabled: true, Voice: strPtr("fable")}

	tc := SetToolVoice(prev, "speak-selected", "").Tools["speak-selected"]
	assert.Nil(t, tc.Voice)
}

func TestHubLevelFlags(t *testing.T) {
	prev := models.NewHubConfig()
	prev.Tools["desk-talk"] = models.ToolConfig{Enabled: false}

	next := SetStartMinimized(prev, true)
	assert.True(t, next.StartMinimized)
	assert.False(t, next.Tools["desk-talk"].Enabled, "tool entries survive hub-level edits")

	next = SetDarkMode(next, false)
	assert.False(t, next.DarkMode)
	assert.True(t, next.StartMinimized)
}
