package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodhub-io/prodhub/internal/backend"
	"github.com/prodhub-io/prodhub/internal/models"
)

func loadConfigCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg, err := b.GetConfig(ctx)
		if err != nil {
			return ConfigLoadedMsg{Err: fmt.Errorf("failed to load config: %w", err)}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func saveConfigCmd(b backend.Backend, cfg *models.HubConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.SaveConfig(ctx, cfg); err != nil {
			return ConfigSavedMsg{Err: fmt.Errorf("failed to save config: %w", err)}
		}
		return ConfigSavedMsg{Config: cfg}
	}
}

func loadAuthStatusCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status, err := b.GetAuthStatus(ctx)
		if err != nil {
			return AuthStatusMsg{Err: fmt.Errorf("failed to load license state: %w", err)}
		}
		return AuthStatusMsg{Status: status}
	}
}

func loadAPIKeyStateCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return APIKeyStateMsg{
			Has:    b.HasAPIKey(ctx),
			Masked: b.GetAPIKeyMasked(ctx),
		}
	}
}

// initialScanCmd runs the one-time full process scan. The short delay lets
// the first frame paint with its Checking... placeholders before the scan
// blocks on the process table.
func initialScanCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(250 * time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		running, err := b.ScanExternalProcesses(ctx)
		if err != nil {
			return ScanCompletedMsg{Err: err}
		}
		return ScanCompletedMsg{Running: running}
	}
}

func pollStatusesCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		running, err := b.GetToolStatuses(ctx)
		if err != nil {
			return StatusReportMsg{Err: err}
		}
		return StatusReportMsg{Running: running}
	}
}

func startToolCmd(b backend.Backend, id string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := b.StartTool(ctx, id)
		return ToolCommandDoneMsg{ID: id, Seq: seq, Err: err}
	}
}

func stopToolCmd(b backend.Backend, id string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := b.StopTool(ctx, id)
		return ToolCommandDoneMsg{ID: id, Seq: seq, Err: err}
	}
}

func openToolSettingsCmd(b backend.Backend, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ToolSettingsOpenedMsg{Err: b.OpenToolSettings(ctx, id)}
	}
}

func saveAPIKeyCmd(b backend.Backend, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.SaveAPIKey(ctx, key); err != nil {
			return ErrorMsg{Err: err}
		}
		return APIKeyStateMsg{
			Has:    b.HasAPIKey(ctx),
			Masked: b.GetAPIKeyMasked(ctx),
		}
	}
}

func deleteAPIKeyCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.DeleteAPIKey(ctx); err != nil {
			return ErrorMsg{Err: err}
		}
		return APIKeyStateMsg{}
	}
}

func startTrialCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		info, err := b.StartTrial(ctx)
		return TrialStartedMsg{Info: info, Err: err}
	}
}

func activateLicenseCmd(b backend.Backend, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		status, err := b.ActivateLicense(ctx, key)
		return LicenseChangedMsg{Status: status, Err: err}
	}
}

func deactivateLicenseCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		status, err := b.DeactivateLicense(ctx)
		return LicenseChangedMsg{Status: status, Err: err}
	}
}

func openCheckoutCmd(b backend.Backend, plan string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return CheckoutOpenedMsg{Err: b.OpenCheckout(ctx, plan)}
	}
}

func pollStatusTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}
