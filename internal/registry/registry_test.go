package registry

import (
	"reflect"
	"testing"

	"github.com/prodhub-io/prodhub/internal/models"
)

func strPtr(s string) *string    { return &s }
func u32Ptr(v uint32) *uint32    { return &v }
func f64Ptr(v float64) *float64  { return &v }

func TestArgs(t *testing.T) {
	speak, _ := Find("speak-selected")
	flatten, _ := Find("flatten-string")
	desktalk, _ := Find("desk-talk")

	tests := []struct {
		name     string
		tool     Tool
		cfg      models.ToolConfig
		expected []string
	}{
		{
			name:     "gui managed tool gets no args",
			tool:     desktalk,
			cfg:      models.ToolConfig{Enabled: true, Hotkey: strPtr("F9")},
			expected: nil,
		},
		{
			name:     "named hotkey",
			tool:     flatten,
			cfg:      models.ToolConfig{Enabled: true, Hotkey: strPtr("F13")},
			expected: []string{"--trigger-key", "F13"},
		},
		{
			name:     "special key code when no named hotkey",
			tool:     speak,
			cfg:      models.ToolConfig{Enabled: true, SpecialHotkey: u32Ptr(125)},
			expected: []string{"--special-ptt-key", "125"},
		},
		{
			name:     "named hotkey wins over special code",
			tool:     speak,
			cfg:      models.ToolConfig{Enabled: true, Hotkey: strPtr("F14"), SpecialHotkey: u32Ptr(125)},
			expected: []string{"--ptt-key", "F14"},
		},
		{
			name: "voice options appended",
			tool: speak,
			cfg: models.ToolConfig{
				Enabled:     true,
				Hotkey:      strPtr("F15"),
				Voice:       strPtr("nova"),
				SpeechSpeed: f64Ptr(1.25),
			},
			expected: []string{"--ptt-key", "F15", "--voice", "nova", "--speed", "1.25"},
		},
		{
			name:     "no hotkey configured yields no args",
			tool:     flatten,
			cfg:      models.ToolConfig{Enabled: true},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tool.Args(tt.cfg)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Args() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFind(t *testing.T) {
	for _, id := range []string{"desk-talk", "speak-selected", "quick-assistant", "flatten-string", "typo-fix", "ocr-paste"} {
		if _, ok := Find(id); !ok {
			t.Errorf("Find(%q) = not found", id)
		}
	}
	if _, ok := Find("no-such-tool"); ok {
		t.Error("Find(no-such-tool) should not succeed")
	}
}

func TestHotkeyOwner(t *testing.T) {
	cfg := models.NewHubConfig()
	cfg.Tools["flatten-string"] = models.ToolConfig{Enabled: true, Hotkey: strPtr("F13")}
	cfg.Tools["ocr-paste"] = models.ToolConfig{Enabled: true, SpecialHotkey: u32Ptr(200)}

	tests := []struct {
		name      string
		exclude   string
		hotkey    *string
		special   *uint32
		wantOwner string
		wantFound bool
	}{
		{
			name:      "named key taken by another tool",
			exclude:   "speak-selected",
			hotkey:    strPtr("F13"),
			wantOwner: "flatten-string",
			wantFound: true,
		},
		{
			name:    "reassigning a tool its own key is fine",
			exclude: "flatten-string",
			hotkey:  strPtr("F13"),
		},
		{
			name:      "special code taken",
			exclude:   "speak-selected",
			special:   u32Ptr(200),
			wantOwner: "ocr-paste",
			wantFound: true,
		},
		{
			name:    "free key",
			exclude: "speak-selected",
			hotkey:  strPtr("F20"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, found := HotkeyOwner(cfg, tt.exclude, tt.hotkey, tt.special)
			if found != tt.wantFound {
				t.Fatalf("HotkeyOwner() found = %v, expected %v", found, tt.wantFound)
			}
			if found && owner.ID != tt.wantOwner {
				t.Errorf("HotkeyOwner() = %s, expected %s", owner.ID, tt.wantOwner)
			}
		})
	}
}
