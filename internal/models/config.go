package models

// ToolConfig holds per-tool configuration as persisted in config.json.
// Pointer fields distinguish "unset" from a zero value; unset optional
// fields are omitted from the file entirely.
type ToolConfig struct {
	Enabled       bool     `json:"enabled"`
	AutoStart     bool     `json:"auto_start"`
	Hotkey        *string  `json:"hotkey,omitempty"`
	SpecialHotkey *uint32  `json:"special_hotkey,omitempty"`
	Voice         *string  `json:"voice,omitempty"`
	SpeechSpeed   *float64 `json:"speech_speed,omitempty"`
}

// NewToolConfig returns the defaults applied to a tool with no entry in
// config.json. Tools are enabled until the user says otherwise.
func NewToolConfig() ToolConfig {
	return ToolConfig{Enabled: true}
}

// HubConfig is the whole config.json document. Saves always replace the
// entire document; partial updates are assembled by the caller before the
// write (see config.Rebuild).
type HubConfig struct {
	AutoStart      bool                  `json:"auto_start"`
	StartMinimized bool                  `json:"start_minimized"`
	DarkMode       bool                  `json:"dark_mode"`
	Tools          map[string]ToolConfig `json:"tools"`
}

// NewHubConfig creates a config with default values.
func NewHubConfig() *HubConfig {
	return &HubConfig{
		DarkMode: true,
		Tools:    map[string]ToolConfig{},
	}
}

// Tool returns the configuration for a tool id, falling back to defaults
// when the tool has no entry.
func (c *HubConfig) Tool(id string) ToolConfig {
	if c == nil || c.Tools == nil {
		return NewToolConfig()
	}
	tc, ok := c.Tools[id]
	if !ok {
		return NewToolConfig()
	}
	return tc
}

// Clone returns a deep copy. Optional pointer fields are duplicated so the
// copy can be mutated without touching the original.
func (c *HubConfig) Clone() *HubConfig {
	if c == nil {
		return NewHubConfig()
	}
	out := &HubConfig{
		AutoStart:      c.AutoStart,
		StartMinimized: c.StartMinimized,
		DarkMode:       c.DarkMode,
		Tools:          make(map[string]ToolConfig, len(c.Tools)),
	}
	for id, tc := range c.Tools {
		out.Tools[id] = tc.Clone()
	}
	return out
}

// Clone returns a copy with duplicated pointer fields.
func (t ToolConfig) Clone() ToolConfig {
	out := t
	if t.Hotkey != nil {
		v := *t.Hotkey
		out.Hotkey = &v
	}
	if t.SpecialHotkey != nil {
		v := *t.SpecialHotkey
		out.SpecialHotkey = &v
	}
	if t.Voice != nil {
		v := *t.Voice
		out.Voice = &v
	}
	if t.SpeechSpeed != nil {
		v := *t.SpeechSpeed
		out.SpeechSpeed = &v
	}
	return out
}

// HasHotkey reports whether either a named hotkey or a raw special key code
// is configured.
func (t ToolConfig) HasHotkey() bool {
	return (t.Hotkey != nil && *t.Hotkey != "") || t.SpecialHotkey != nil
}
