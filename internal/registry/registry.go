// Package registry defines the fixed set of tools the hub manages.
// The set is compiled in; tools are never discovered at runtime.
package registry

import "github.com/prodhub-io/prodhub/internal/models"

// Kind says how a tool receives its configuration.
type Kind int

const (
	// KindGUIManaged tools own their settings UI and read their own config.
	// The hub launches them with no arguments.
	KindGUIManaged Kind = iota
	// KindCLIHotkey tools are configured entirely through command-line
	// flags, at minimum a hotkey flag.
	KindCLIHotkey
)

// Tool describes one managed tool.
type Tool struct {
	ID          string
	Name        string
	Description string
	// Binary is the executable name without extension. Process matching
	// during scans compares against this, lowercased.
	Binary string
	Kind   Kind
	// HotkeyArg is the flag that carries the named hotkey. Set only for
	// KindCLIHotkey tools.
	HotkeyArg string
	// SpecialHotkeyArg is the flag for a raw key code, for keys that have
	// no stable name across layouts. Optional.
	SpecialHotkeyArg string
	RequiresAPIKey   bool
	HasVoiceOptions  bool
}

// GUIManaged reports whether the hub passes no flags to this tool.
func (t Tool) GUIManaged() bool { return t.Kind == KindGUIManaged }

// Args builds the command-line arguments for launching the tool with the
// given configuration. GUI-managed tools always get none.
func (t Tool) Args(tc models.ToolConfig) []string {
	if t.Kind != KindCLIHotkey {
		return nil
	}
	var args []string
	if tc.Hotkey != nil && *tc.Hotkey != "" {
		args = append(args, t.HotkeyArg, *tc.Hotkey)
	} else if tc.SpecialHotkey != nil && t.SpecialHotkeyArg != "" {
		args = append(args, t.SpecialHotkeyArg, formatKeyCode(*tc.SpecialHotkey))
	}
	if t.HasVoiceOptions {
		if tc.Voice != nil && *tc.Voice != "" {
			args = append(args, "--voice", *tc.Voice)
		}
		if tc.SpeechSpeed != nil {
			args = append(args, "--speed", formatSpeed(*tc.SpeechSpeed))
		}
	}
	return args
}

var tools = []Tool{
	{
		ID:             "desk-talk",
		Name:           "DeskTalk",
		Description:    "Voice-to-text transcription with push-to-talk",
		Binary:         "desk-talk",
		Kind:           KindGUIManaged,
		RequiresAPIKey: true,
	},
	{
		ID:               "speak-selected",
		Name:             "Speak Selected",
		Description:      "Read the selected text aloud with natural voices",
		Binary:           "speak-selected",
		Kind:             KindCLIHotkey,
		HotkeyArg:        "--ptt-key",
		SpecialHotkeyArg: "--special-ptt-key",
		RequiresAPIKey:   true,
		HasVoiceOptions:  true,
	},
	{
		ID:               "quick-assistant",
		Name:             "Quick Assistant",
		Description:      "Push-to-talk voice assistant for quick questions",
		Binary:           "quick-assistant",
		Kind:             KindCLIHotkey,
		HotkeyArg:        "--ptt-key",
		SpecialHotkeyArg: "--special-ptt-key",
		RequiresAPIKey:   true,
		HasVoiceOptions:  true,
	},
	{
		ID:          "flatten-string",
		Name:        "Flatten String",
		Description: "Paste clipboard text as one flattened line",
		Binary:      "strflatten",
		Kind:        KindCLIHotkey,
		HotkeyArg:   "--trigger-key",
	},
	{
		ID:             "typo-fix",
		Name:           "Typo Fix",
		Description:    "Fix typos and grammar in selected text with AI",
		Binary:         "typo-fix",
		Kind:           KindGUIManaged,
		RequiresAPIKey: true,
	},
	{
		ID:             "ocr-paste",
		Name:           "OCR Paste",
		Description:    "Capture a screen region and paste the recognized text",
		Binary:         "ocrp",
		Kind:           KindCLIHotkey,
		HotkeyArg:      "--trigger-key",
		RequiresAPIKey: true,
	},
}

// List returns every tool in display order. The returned slice is shared;
// callers must not modify it.
func List() []Tool {
	return tools
}

// Find looks up a tool by id.
func Find(id string) (Tool, bool) {
	for _, t := range tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// Voices lists the voice names accepted by tools with voice options.
func Voices() []string {
	return []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
}
