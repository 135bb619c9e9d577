package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/prodhub-io/prodhub/internal/backend"
	"github.com/prodhub-io/prodhub/internal/telemetry"
	"github.com/prodhub-io/prodhub/internal/tray"
)

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run the system tray icon",
	Long: `Run the hub as a system tray icon. Tools marked for auto-start are
launched on startup. Quitting the tray leaves the tools running.`,
	RunE: runTray,
}

func runTray(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	runTrayLoop(b, tele)
	return nil
}

// runTrayLoop blocks in the tray until the user quits it.
func runTrayLoop(b *backend.Local, tele *telemetry.Client) {
	tray.Run(b,
		func() {
			go b.AutoStartTools(context.Background())
		},
		func() {
			tele.Close()
		},
	)
}
