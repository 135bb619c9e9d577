// Package backend defines the command surface between the dashboard (or
// tray, or CLI) and the hub's stores and process manager. Frontends treat
// it as an async boundary: calls run off the UI loop and report back as
// messages.
package backend

import (
	"context"
	"errors"

	"github.com/prodhub-io/prodhub/internal/licensing"
	"github.com/prodhub-io/prodhub/internal/models"
)

// ErrUnknownTool is returned for tool IDs outside the registry.
var ErrUnknownTool = errors.New("unknown tool")

// ErrNotAuthorized is returned when a start is attempted without a license
// or active trial.
var ErrNotAuthorized = errors.New("not authorized: start a trial or activate a license")

// Backend is the full command surface.
type Backend interface {
	// Configuration. SaveConfig replaces the whole document.
	GetConfig(ctx context.Context) (*models.HubConfig, error)
	SaveConfig(ctx context.Context, cfg *models.HubConfig) error

	// Shared API key.
	HasAPIKey(ctx context.Context) bool
	GetAPIKey(ctx context.Context) (string, error)
	GetAPIKeyMasked(ctx context.Context) string
	SaveAPIKey(ctx context.Context, key string) error
	DeleteAPIKey(ctx context.Context) error

	// Process lifecycle. ScanExternalProcesses walks the system process
	// table and is expensive; GetToolStatuses is the cheap per-poll call.
	// Both return the set of running tool IDs.
	ScanExternalProcesses(ctx context.Context) (map[string]bool, error)
	GetToolStatuses(ctx context.Context) (map[string]bool, error)
	StartTool(ctx context.Context, id string) error
	StopTool(ctx context.Context, id string) error
	OpenToolSettings(ctx context.Context, id string) error

	// Licensing. Mutations persist first; the status returned afterwards
	// is re-derived from the stored state, not from the mutation response.
	GetAuthStatus(ctx context.Context) (licensing.AuthStatus, error)
	StartTrial(ctx context.Context) (licensing.TrialInfo, error)
	ActivateLicense(ctx context.Context, key string) (licensing.AuthStatus, error)
	DeactivateLicense(ctx context.Context) (licensing.AuthStatus, error)
	OpenCheckout(ctx context.Context, plan string) error
}
