package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub-io/prodhub/internal/registry"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Manage tools from the command line",
	Long:  `List, start, and stop the managed tools without opening the dashboard.`,
}

var toolListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tools and their status",
	RunE:    runToolList,
}

var toolStartCmd = &cobra.Command{
	Use:   "start [tool-id]",
	Short: "Start a tool",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolStart,
}

var toolStopCmd = &cobra.Command{
	Use:   "stop [tool-id]",
	Short: "Stop a tool",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolStop,
}

func init() {
	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolStartCmd)
	toolCmd.AddCommand(toolStopCmd)
}

func runToolList(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	running, err := b.ScanExternalProcesses(ctx)
	if err != nil {
		return fmt.Errorf("process scan failed: %w", err)
	}

	cfg, err := b.GetConfig(ctx)
	if err != nil {
		return err
	}

	for _, tool := range registry.List() {
		badge := badgeStopped.Render("○ Stopped")
		if running[tool.ID] {
			badge = badgeRunning.Render("● Running")
		}
		name := tool.Name
		if !cfg.Tool(tool.ID).Enabled {
			name += " (disabled)"
		}
		fmt.Printf("  %s  %s %s\n", badge, styleValue.Render(fmt.Sprintf("%-20s", name)), styleHint.Render(tool.ID))
	}
	return nil
}

func runToolStart(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	tool, ok := registry.Find(args[0])
	if !ok {
		return fmt.Errorf("unknown tool %q, see 'prodhub tool list'", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Adopt an already-running copy first so start is a clean no-op.
	if _, err := b.ScanExternalProcesses(ctx); err != nil {
		return fmt.Errorf("process scan failed: %w", err)
	}

	if err := b.StartTool(ctx, tool.ID); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Started " + tool.Name))
	return nil
}

func runToolStop(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	tool, ok := registry.Find(args[0])
	if !ok {
		return fmt.Errorf("unknown tool %q, see 'prodhub tool list'", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := b.ScanExternalProcesses(ctx); err != nil {
		return fmt.Errorf("process scan failed: %w", err)
	}

	if err := b.StopTool(ctx, tool.ID); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Stopped " + tool.Name))
	return nil
}
