package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prodhub-io/prodhub/internal/registry"
)

// confirmMode values.
const (
	confirmNone = iota
	confirmStop
	confirmDeleteKey
	confirmDeactivate
)

func renderStatusBar(m *Model, width int) string {
	if m.confirmMode == confirmStop {
		name := m.confirmToolID
		if tool, ok := registry.Find(m.confirmToolID); ok {
			name = tool.Name
		}
		return renderConfirmBar(fmt.Sprintf("Stop %s? (y/n)", name), width)
	}
	if m.confirmMode == confirmDeleteKey {
		return renderConfirmBar("Delete the stored API key? (y/n)", width)
	}
	if m.confirmMode == confirmDeactivate {
		return renderConfirmBar("Deactivate this license? (y/n)", width)
	}

	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	if m.showSaved {
		return renderSavedBar(width)
	}

	left := " " + getKeyHints(m)

	right := ""
	if m.backend == nil {
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("⚠ Offline") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay != overlayNone {
		return keyHint("Enter", "save") + "  " + keyHint("Esc", "cancel")
	}

	base := keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " + keyHint("Tab", "switch")

	switch m.tab {
	case tabTools:
		hints := base + "  " + keyHint("s", "start") + "  " + keyHint("S", "stop") + "  " +
			keyHint("e", "enable") + "  " + keyHint("a", "auto-start")

		tools := registry.List()
		tool := tools[m.cursor]
		if tool.Kind == registry.KindCLIHotkey {
			hints += "  " + keyHint("h", "hotkey")
		}
		if tool.HasVoiceOptions {
			hints += "  " + keyHint("v", "voice") + "  " + keyHint("p", "speed")
		}
		if tool.GUIManaged() {
			hints += "  " + keyHint("o", "settings")
		}
		return hints
	case tabSettings:
		return base + "  " + keyHint("j/k", "navigate") + "  " + keyHint("Space", "toggle") + "  " +
			keyHint("Enter", "edit") + "  " + keyHint("x", "delete key")
	case tabLicense:
		return base + "  " + keyHint("t", "trial") + "  " + keyHint("a", "activate") + "  " +
			keyHint("d", "deactivate") + "  " + keyHint("m/y/l", "buy")
	}

	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}
