package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"q / Ctrl+q", "Quit (tools keep running)"},
			{"?", "Toggle help"},
			{"Tab", "Cycle tabs"},
			{"1/2/3", "Tools / Settings / License"},
		},
	},
	{
		title: "Tools",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate tools"},
			{"s / Enter", "Start tool"},
			{"S / x", "Stop tool"},
			{"e", "Enable or disable"},
			{"a", "Toggle auto-start"},
			{"h", "Choose hotkey"},
			{"v", "Choose voice"},
			{"p", "Set speech speed"},
			{"o", "Open tool settings window"},
		},
	},
	{
		title: "Settings",
		keys: []helpKey{
			{"j/k", "Navigate fields"},
			{"Enter", "Set the API key"},
			{"Space", "Toggle option"},
			{"x", "Delete the API key"},
		},
	},
	{
		title: "License",
		keys: []helpKey{
			{"t", "Start the free trial"},
			{"a / Enter", "Activate a license key"},
			{"d", "Deactivate license"},
			{"m/y/l", "Buy monthly / yearly / lifetime"},
		},
	},
	{
		title: "Overlays",
		keys: []helpKey{
			{"Enter", "Save / select"},
			{"Esc", "Cancel / Close"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 56
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(14).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press any key to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
