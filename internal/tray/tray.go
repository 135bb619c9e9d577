package tray

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getlantern/systray"

	"github.com/prodhub-io/prodhub/internal/backend"
	"github.com/prodhub-io/prodhub/internal/licensing"
	"github.com/prodhub-io/prodhub/internal/registry"
)

var (
	hub     backend.Backend
	onStart func()
	onExit  func()

	authItem  *systray.MenuItem
	toolItems map[string]*toolMenu
	dashItem  *systray.MenuItem
	quitItem  *systray.MenuItem
)

type toolMenu struct {
	tool  registry.Tool
	root  *systray.MenuItem
	start *systray.MenuItem
	stop  *systray.MenuItem
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready; onExitFn when it exits. Running
// tools are never stopped on exit.
func Run(b backend.Backend, onStartFn, onExitFn func()) {
	hub = b
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(formatTooltip(0))

	header := systray.AddMenuItem("Productivity Hub", "")
	header.Disable()

	authItem = systray.AddMenuItem("Checking license...", "")
	authItem.Disable()

	systray.AddSeparator()

	// One fixed slot per tool; the set never changes at runtime.
	toolItems = make(map[string]*toolMenu, len(registry.List()))
	for _, tool := range registry.List() {
		root := systray.AddMenuItem("○ "+tool.Name, tool.Description)
		item := &toolMenu{
			tool:  tool,
			root:  root,
			start: root.AddSubMenuItem("Start", ""),
			stop:  root.AddSubMenuItem("Stop", ""),
		}
		toolItems[tool.ID] = item
		go handleToolClicks(item)
	}

	systray.AddSeparator()

	dashItem = systray.AddMenuItem("Open Dashboard", "Run 'prodhub' in a terminal")
	quitItem = systray.AddMenuItem("Quit", "Close the hub, tools keep running")

	if onStart != nil {
		onStart()
	}

	go handleClicks()
	go refreshLoop()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-dashItem.ClickedCh:
			log.Println("The dashboard runs in a terminal: prodhub")

		case <-quitItem.ClickedCh:
			systray.Quit()
		}
	}
}

func handleToolClicks(item *toolMenu) {
	for {
		select {
		case <-item.start.ClickedCh:
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := hub.StartTool(ctx, item.tool.ID); err != nil {
					log.Printf("Start %s: %v", item.tool.Name, err)
				}
			}()

		case <-item.stop.ClickedCh:
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := hub.StopTool(ctx, item.tool.ID); err != nil {
					log.Printf("Stop %s: %v", item.tool.Name, err)
				}
			}()
		}
	}
}

// refreshLoop keeps the menu in sync with reality: one full scan at startup
// to adopt externally started tools, then a cheap poll every 2 seconds.
func refreshLoop() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	running, err := hub.ScanExternalProcesses(ctx)
	cancel()
	if err != nil {
		log.Printf("Process scan failed: %v", err)
		running = map[string]bool{}
	}
	applyRunning(running)
	refreshAuth()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		running, err := hub.GetToolStatuses(ctx)
		cancel()
		if err != nil {
			continue
		}
		applyRunning(running)
	}
}

func applyRunning(running map[string]bool) {
	count := 0
	for id, item := range toolItems {
		if running[id] {
			count++
			item.root.SetTitle("● " + item.tool.Name)
			item.start.Disable()
			item.stop.Enable()
		} else {
			item.root.SetTitle("○ " + item.tool.Name)
			item.start.Enable()
			item.stop.Disable()
		}
	}
	systray.SetTooltip(formatTooltip(count))
}

func refreshAuth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	auth, err := hub.GetAuthStatus(ctx)
	if err != nil {
		authItem.SetTitle("License state unknown")
		return
	}
	switch auth.Kind {
	case licensing.AuthLicensed:
		authItem.SetTitle(auth.Plan.Display() + " license")
	case licensing.AuthTrial:
		authItem.SetTitle(fmt.Sprintf("Trial: %dd %dh left", auth.DaysRemaining, auth.HoursRemaining))
	case licensing.AuthTrialExpired:
		authItem.SetTitle("Trial expired")
	default:
		authItem.SetTitle("No license")
	}
}

func formatTooltip(active int) string {
	return fmt.Sprintf("Productivity Hub: %d of %d tools running", active, len(registry.List()))
}
