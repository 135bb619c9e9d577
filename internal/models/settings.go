package models

// ToolPathConfig overrides where a tool binary is found.
type ToolPathConfig struct {
	Path string `yaml:"path"` // empty = search next to the hub binary, then PATH
}

// TelemetryConfig holds anonymous usage reporting settings.
type TelemetryConfig struct {
	Disabled bool `yaml:"disabled"`
}

// Settings represents host-level settings, ~/.prodhub/settings.yaml.
// Unlike config.json this file is machine-specific and never synced.
type Settings struct {
	Version   int                        `yaml:"version"`
	Tools     map[string]*ToolPathConfig `yaml:"tools"`
	Telemetry TelemetryConfig            `yaml:"telemetry"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Tools:   map[string]*ToolPathConfig{},
	}
}

// ToolPath returns the configured binary path override for a tool, or "".
func (s *Settings) ToolPath(id string) string {
	if s == nil || s.Tools == nil {
		return ""
	}
	if tc := s.Tools[id]; tc != nil {
		return tc.Path
	}
	return ""
}
