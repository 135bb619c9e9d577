package backend

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"time"

	"github.com/prodhub-io/prodhub/internal/autostart"
	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/keystore"
	"github.com/prodhub-io/prodhub/internal/licensing"
	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/proc"
	"github.com/prodhub-io/prodhub/internal/registry"
	"github.com/prodhub-io/prodhub/internal/telemetry"
)

// Local implements Backend in-process over the config store, keystore,
// licensing store, and process manager.
type Local struct {
	store     *config.Store
	processes *proc.Manager
	telemetry *telemetry.Client
}

// NewLocal assembles the backend. telemetryClient may be nil.
func NewLocal(store *config.Store, processes *proc.Manager, telemetryClient *telemetry.Client) *Local {
	return &Local{
		store:     store,
		processes: processes,
		telemetry: telemetryClient,
	}
}

// Processes exposes the process manager for shutdown handling.
func (l *Local) Processes() *proc.Manager {
	return l.processes
}

func (l *Local) GetConfig(ctx context.Context) (*models.HubConfig, error) {
	return l.store.Load()
}

func (l *Local) SaveConfig(ctx context.Context, cfg *models.HubConfig) error {
	if err := l.store.Save(cfg); err != nil {
		return err
	}
	// Keep the OS login entry in line with auto_start on every save. A
	// failure here must not fail the save itself.
	if err := autostart.Sync(cfg.AutoStart); err != nil {
		log.Printf("autostart: %v", err)
	}
	return nil
}

func (l *Local) HasAPIKey(ctx context.Context) bool {
	return keystore.Has()
}

func (l *Local) GetAPIKey(ctx context.Context) (string, error) {
	return keystore.Load()
}

func (l *Local) GetAPIKeyMasked(ctx context.Context) string {
	return keystore.Masked()
}

func (l *Local) SaveAPIKey(ctx context.Context, key string) error {
	return keystore.Save(key)
}

func (l *Local) DeleteAPIKey(ctx context.Context) error {
	return keystore.Delete()
}

func (l *Local) ScanExternalProcesses(ctx context.Context) (map[string]bool, error) {
	return l.processes.FullScan()
}

func (l *Local) GetToolStatuses(ctx context.Context) (map[string]bool, error) {
	return l.processes.Refresh(), nil
}

func (l *Local) StartTool(ctx context.Context, id string) error {
	tool, ok := registry.Find(id)
	if !ok {
		return ErrUnknownTool
	}

	auth, err := l.GetAuthStatus(ctx)
	if err != nil {
		return err
	}
	if !auth.Authorized() {
		return ErrNotAuthorized
	}

	tc := l.store.Cached().Tool(id)
	if err := l.processes.Start(tool, tc); err != nil {
		return err
	}
	l.telemetry.CaptureTool(telemetry.EventToolStarted, id)
	return nil
}

func (l *Local) StopTool(ctx context.Context, id string) error {
	tool, ok := registry.Find(id)
	if !ok {
		return ErrUnknownTool
	}
	if err := l.processes.Stop(tool); err != nil {
		return err
	}
	l.telemetry.CaptureTool(telemetry.EventToolStopped, id)
	return nil
}

// OpenToolSettings launches a GUI-managed tool's own settings window. The
// tools are single-instance; launching an already-running one brings its
// window forward.
func (l *Local) OpenToolSettings(ctx context.Context, id string) error {
	tool, ok := registry.Find(id)
	if !ok {
		return ErrUnknownTool
	}
	if !tool.GUIManaged() {
		return fmt.Errorf("%s doesn't have a settings window", tool.Name)
	}
	return l.processes.Launch(tool)
}

func (l *Local) GetAuthStatus(ctx context.Context) (licensing.AuthStatus, error) {
	cfg, err := licensing.LoadConfig()
	if err != nil {
		return licensing.AuthStatus{}, err
	}
	return licensing.AuthStatusAt(cfg, time.Now()), nil
}

func (l *Local) StartTrial(ctx context.Context) (licensing.TrialInfo, error) {
	cfg, err := licensing.LoadConfig()
	if err != nil {
		return licensing.TrialInfo{}, err
	}
	info, err := licensing.StartTrial(cfg, time.Now())
	if err != nil {
		return licensing.TrialInfo{}, err
	}
	l.telemetry.Capture(telemetry.EventTrialStarted, nil)
	return info, nil
}

func (l *Local) ActivateLicense(ctx context.Context, key string) (licensing.AuthStatus, error) {
	result, err := licensing.ActivateAndSave(ctx, key)
	if err != nil {
		return licensing.AuthStatus{}, err
	}
	if !result.Activated {
		if result.Error != "" {
			return licensing.AuthStatus{}, fmt.Errorf("activation failed: %s", result.Error)
		}
		return licensing.AuthStatus{}, fmt.Errorf("activation failed")
	}
	l.telemetry.Capture(telemetry.EventLicenseActivated, nil)
	return l.GetAuthStatus(ctx)
}

func (l *Local) DeactivateLicense(ctx context.Context) (licensing.AuthStatus, error) {
	if _, err := licensing.DeactivateAndClear(ctx); err != nil {
		return licensing.AuthStatus{}, err
	}
	return l.GetAuthStatus(ctx)
}

func (l *Local) OpenCheckout(ctx context.Context, plan string) error {
	return openURL(licensing.CheckoutURL(plan))
}

// AutoStartTools launches every enabled tool marked for auto-start. Tools
// needing an API key are skipped when none is stored; tools missing a
// hotkey are skipped by the same rule the dashboard applies.
func (l *Local) AutoStartTools(ctx context.Context) {
	cfg, err := l.store.Load()
	if err != nil {
		log.Printf("auto-start: failed to load config: %v", err)
		return
	}

	hasKey := keystore.Has()
	for _, tool := range registry.List() {
		tc := cfg.Tool(tool.ID)
		if !tc.Enabled || !tc.AutoStart {
			continue
		}
		if tool.RequiresAPIKey && !hasKey {
			log.Printf("auto-start: skipping %s, no API key configured", tool.Name)
			continue
		}
		if tool.Kind == registry.KindCLIHotkey && !tc.HasHotkey() {
			log.Printf("auto-start: skipping %s, no hotkey configured", tool.Name)
			continue
		}
		if err := l.StartTool(ctx, tool.ID); err != nil {
			log.Printf("auto-start: %s: %v", tool.Name, err)
		}
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("cmd", "/C", "start", "", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
