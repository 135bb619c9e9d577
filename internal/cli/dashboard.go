package cli

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/tui"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}

	// start_minimized sends the hub straight to the tray instead of the
	// dashboard.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cfg, cfgErr := b.GetConfig(ctx)
	cancel()
	if cfgErr == nil && startsMinimized(cfg) {
		runTrayLoop(b, tele)
		return nil
	}

	defer tele.Close()

	// log.Printf output would corrupt the alt screen; send it to a file.
	redirectLogs()

	return tui.Run(b)
}

// startsMinimized reports whether launches should skip the dashboard and go
// straight to the tray.
func startsMinimized(cfg *models.HubConfig) bool {
	return cfg != nil && cfg.StartMinimized
}

// redirectLogs points the standard logger at ~/.prodhub/prodhub.log while
// the dashboard owns the terminal.
func redirectLogs() {
	dir, err := config.GlobalDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "prodhub.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}
