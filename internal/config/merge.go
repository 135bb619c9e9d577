package config

import (
	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
)

// Rebuild assembles a complete config document from the previous one: a deep
// copy with an entry for every registered tool, then mutate applied to it.
// Field-level edits go through this so a save can never drop another tool's
// settings from the file.
func Rebuild(prev *models.HubConfig, mutate func(*models.HubConfig)) *models.HubConfig {
	next := prev.Clone()
	for _, t := range registry.List() {
		if _, ok := next.Tools[t.ID]; !ok {
			next.Tools[t.ID] = models.NewToolConfig()
		}
	}
	if mutate != nil {
		mutate(next)
	}
	return next
}

// SetToolEnabled returns a full document with one tool's enabled flag changed.
func SetToolEnabled(prev *models.HubConfig, id string, enabled bool) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) {
		tc := c.Tool(id)
		tc.Enabled = enabled
		c.Tools[id] = tc
	})
}

// SetToolAutoStart returns a full document with one tool's auto-start flag changed.
func SetToolAutoStart(prev *models.HubConfig, id string, autoStart bool) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) {
		tc := c.Tool(id)
		tc.AutoStart = autoStart
		c.Tools[id] = tc
	})
}

// SetToolHotkey returns a full document with one tool's hotkey replaced.
// An empty name clears the hotkey. Assigning a named key clears any raw key
// code; the two are alternatives for the same flag slot.
func SetToolHotkey(prev *models.HubConfig, id, name string) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) {
		tc := c.Tool(id)
		if name == "" {
			tc.Hotkey = nil
		} else {
			tc.Hotkey = &name
			tc.SpecialHotkey = nil
		}
		c.Tools[id] = tc
	})
}

// SetToolSpecialHotkey returns a full document with one tool's raw key code
// replaced, clearing any named hotkey.
func SetToolSpecialHotkey(prev *models.HubConfig, id string, code uint32) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) {
		tc := c.Tool(id)
		tc.SpecialHotkey = &code
		tc.Hotkey = nil
		c.Tools[id] = tc
	})
}

// SetToolVoice returns a full document with one tool's voice replaced.
// An empty voice clears the field back to the tool default.
func SetToolVoice(prev *models.HubConfig, id, voice string) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) {
		tc := c.Tool(id)
		if voice == "" {
			tc.Voice = nil
		} else {
			tc.Voice = &voice
		}
		c.Tools[id] = tc
	})
}

// SetToolSpeechSpeed returns a full document with one tool's speech speed
// replaced. A nil speed clears the field.
func SetToolSpeechSpeed(prev *models.HubConfig, id string, speed *float64) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) {
		tc := c.Tool(id)
		if speed == nil {
			tc.SpeechSpeed = nil
		} else {
			v := *speed
			tc.SpeechSpeed = &v
		}
		c.Tools[id] = tc
	})
}

// SetAutoStart returns a full document with the hub auto-start flag changed.
func SetAutoStart(prev *models.HubConfig, v bool) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) { c.AutoStart = v })
}

// SetStartMinimized returns a full document with the start-minimized flag changed.
func SetStartMinimized(prev *models.HubConfig, v bool) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) { c.StartMinimized = v })
}

// SetDarkMode returns a full document with the dark-mode flag changed.
func SetDarkMode(prev *models.HubConfig, v bool) *models.HubConfig {
	return Rebuild(prev, func(c *models.HubConfig) { c.DarkMode = v })
}
