package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/prodhub-io/prodhub/internal/registry"
)

// renderOverlay renders an overlay centered on top of the base view.
func renderOverlay(base, overlayContent string, width, height int) string {
	// Dim the background
	baseLines := strings.Split(base, "\n")
	for i, line := range baseLines {
		baseLines[i] = overlayDimStyle.Render(line)
	}
	dimmed := strings.Join(baseLines, "\n")

	// Calculate overlay position
	overlayLines := strings.Split(overlayContent, "\n")
	overlayHeight := len(overlayLines)
	overlayWidth := 0
	for _, l := range overlayLines {
		if w := lipgloss.Width(l); w > overlayWidth {
			overlayWidth = w
		}
	}

	// Center
	top := (height - overlayHeight) / 2
	left := (width - overlayWidth) / 2
	if top < 1 {
		top = 1
	}
	if left < 1 {
		left = 1
	}

	// Place overlay on top of dimmed background using ANSI-aware slicing
	result := strings.Split(dimmed, "\n")
	for i, line := range overlayLines {
		row := top + i
		if row >= len(result) {
			continue
		}
		bg := result[row]
		bgWidth := lipgloss.Width(bg)

		// Left portion of background (columns 0..left-1)
		leftPart := ansi.Truncate(bg, left, "")

		// Right portion of background (columns left+overlayWidth..)
		rightPart := ""
		rightStart := left + lipgloss.Width(line)
		if rightStart < bgWidth {
			rightPart = ansi.Cut(bg, rightStart, bgWidth)
		}

		// Compose: left background + reset + overlay + reset + right background
		result[row] = leftPart + "\033[0m" + line + "\033[0m" + rightPart
	}

	return strings.Join(result, "\n")
}

// renderActiveOverlay renders the content of the currently open overlay.
func renderActiveOverlay(m *Model) string {
	switch m.activeOverlay {
	case overlayHotkey:
		return renderPicker(m, "Select Hotkey")
	case overlayVoice:
		return renderPicker(m, "Select Voice")
	case overlaySpeed:
		return renderInput(m, "Speech Speed", "0.25 to 4.0, empty for default")
	case overlayAPIKey:
		return renderInput(m, "OpenAI API Key", "starts with sk-, stored in the keychain")
	case overlayLicense:
		return renderInput(m, "Activate License", "paste your LemonSqueezy license key")
	}
	return ""
}

func renderPicker(m *Model, title string) string {
	toolName := m.overlayToolID
	if tool, ok := registry.Find(m.overlayToolID); ok {
		toolName = tool.Name
	}

	lines := []string{overlayTitleStyle.Render(title + " · " + toolName)}

	// Window the list so long pickers (the hotkey list) fit the terminal.
	const window = 12
	start := 0
	if m.pickerCursor >= window {
		start = m.pickerCursor - window + 1
	}
	end := start + window
	if end > len(m.pickerItems) {
		end = len(m.pickerItems)
	}

	for i := start; i < end; i++ {
		item := m.pickerItems[i]
		if i == m.pickerCursor {
			lines = append(lines, selectedItemStyle.Render("> "+item))
		} else {
			lines = append(lines, "  "+item)
		}
	}
	if end < len(m.pickerItems) {
		lines = append(lines, overlayDimStyle.Render("  ..."))
	}

	lines = append(lines, "", overlayDimStyle.Render("Enter select · Esc cancel"))
	return overlayStyle.Render(strings.Join(lines, "\n"))
}

func renderInput(m *Model, title, hint string) string {
	lines := []string{
		overlayTitleStyle.Render(title),
		m.input.View(),
		"",
		overlayDimStyle.Render(hint),
		overlayDimStyle.Render("Enter save · Esc cancel"),
	}
	return overlayStyle.Render(strings.Join(lines, "\n"))
}
