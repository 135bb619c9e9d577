package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
	"github.com/prodhub-io/prodhub/internal/status"
)

func renderToolList(m *Model, width int) string {
	var rows []string
	for i, tool := range registry.List() {
		row := renderToolRow(m, tool, i == m.cursor, width)
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func renderToolRow(m *Model, tool registry.Tool, selected bool, width int) string {
	tc := m.cfg.Tool(tool.ID)
	st := m.tracker.Status(tool.ID)

	badge := renderStatusBadge(st)

	name := toolNameStyle.Render(tool.Name)
	if !tc.Enabled {
		name = toolDisabledStyle.Render(tool.Name + " (disabled)")
	}

	var flags []string
	if tc.AutoStart {
		flags = append(flags, "auto-start")
	}
	if tool.Kind == registry.KindCLIHotkey {
		flags = append(flags, "hotkey: "+hotkeyLabel(tc))
	}
	if tool.HasVoiceOptions {
		flags = append(flags, "voice: "+voiceLabel(tc))
	}
	meta := ""
	if len(flags) > 0 {
		meta = toolDescStyle.Render("  [" + strings.Join(flags, ", ") + "]")
	}

	line1 := fmt.Sprintf(" %s  %s%s", badge, name, meta)

	line2 := "           " + toolDescStyle.Render(tool.Description)
	if ok, reason := status.CanStart(tool, tc, m.auth.Authorized(), m.hasAPIKey); !ok && !st.Running() {
		line2 = "           " + toolBlockedStyle.Render("⚠ "+reason)
	}

	row := line1 + "\n" + line2
	if selected {
		return selectedItemStyle.Width(width).Render(row)
	}
	return lipgloss.NewStyle().Width(width).Render(row)
}

func renderStatusBadge(st models.ToolStatus) string {
	switch st {
	case models.StatusRunning:
		return statusRunningStyle.Render("● Running ")
	case models.StatusStarting, models.StatusStopping:
		return statusPendingStyle.Render(fmt.Sprintf("◌ %-8s", st))
	case models.StatusChecking:
		return statusCheckingStyle.Render("◌ Checking")
	default:
		return statusStoppedStyle.Render("○ Stopped ")
	}
}

func hotkeyLabel(tc models.ToolConfig) string {
	if tc.Hotkey != nil && *tc.Hotkey != "" {
		return *tc.Hotkey
	}
	if tc.SpecialHotkey != nil {
		return fmt.Sprintf("code %d", *tc.SpecialHotkey)
	}
	return "none"
}

func voiceLabel(tc models.ToolConfig) string {
	voice := "default"
	if tc.Voice != nil && *tc.Voice != "" {
		voice = *tc.Voice
	}
	if tc.SpeechSpeed != nil {
		return fmt.Sprintf("%s @%.2gx", voice, *tc.SpeechSpeed)
	}
	return voice
}
