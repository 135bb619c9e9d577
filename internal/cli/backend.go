package cli

import (
	"fmt"

	"github.com/prodhub-io/prodhub/internal/backend"
	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/licensing"
	"github.com/prodhub-io/prodhub/internal/proc"
	"github.com/prodhub-io/prodhub/internal/telemetry"
)

// newBackend assembles the local backend every command runs against. The
// telemetry client comes back separately so commands can flush it on exit.
func newBackend() (*backend.Local, *telemetry.Client, error) {
	if err := config.EnsureGlobalDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	store := config.NewStore()
	if _, err := store.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	disabled := false
	if settings, err := config.LoadSettings(); err == nil {
		disabled = settings.Telemetry.Disabled
	}

	machineID := ""
	if licCfg, err := licensing.LoadConfig(); err == nil {
		machineID = licCfg.MachineID
	}

	tele := telemetry.New(machineID, disabled)
	return backend.NewLocal(store, proc.NewManager(), tele), tele, nil
}
