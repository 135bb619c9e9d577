package tui

import (
	"github.com/prodhub-io/prodhub/internal/licensing"
	"github.com/prodhub-io/prodhub/internal/models"
)

// ConfigLoadedMsg carries the hub configuration from the backend.
type ConfigLoadedMsg struct {
	Config *models.HubConfig
	Err    error
}

// ConfigSavedMsg signals a config save attempt finished. Config is the
// document that was sent; it becomes the model's copy only on success.
type ConfigSavedMsg struct {
	Config *models.HubConfig
	Err    error
}

// AuthStatusMsg carries the authorization status.
type AuthStatusMsg struct {
	Status licensing.AuthStatus
	Err    error
}

// APIKeyStateMsg carries whether a key is stored and its display preview.
type APIKeyStateMsg struct {
	Has    bool
	Masked string
}

// ScanCompletedMsg carries the result of the one-time full process scan.
type ScanCompletedMsg struct {
	Running map[string]bool
	Err     error
}

// StatusReportMsg carries the running set from the lightweight poll.
type StatusReportMsg struct {
	Running map[string]bool
	Err     error
}

// ToolCommandDoneMsg signals a start or stop command finished. Seq fences
// it against newer commands on the same tool.
type ToolCommandDoneMsg struct {
	ID  string
	Seq uint64
	Err error
}

// ToolSettingsOpenedMsg signals a settings window launch attempt finished.
type ToolSettingsOpenedMsg struct {
	Err error
}

// TrialStartedMsg signals the trial start attempt finished.
type TrialStartedMsg struct {
	Info licensing.TrialInfo
	Err  error
}

// LicenseChangedMsg carries the re-derived auth status after an
// activation or deactivation.
type LicenseChangedMsg struct {
	Status licensing.AuthStatus
	Err    error
}

// CheckoutOpenedMsg signals the browser launch attempt finished.
type CheckoutOpenedMsg struct {
	Err error
}

// ConfigFileChangedMsg signals config.json changed on disk outside the
// dashboard.
type ConfigFileChangedMsg struct{}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// TickMsg is the periodic status poll tick.
type TickMsg struct{}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}
