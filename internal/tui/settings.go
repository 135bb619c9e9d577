package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodhub-io/prodhub/internal/config"
)

// Settings tab rows.
const (
	settingAPIKey = iota
	settingAutoStart
	settingStartMinimized
	settingDarkMode
	settingCount
)

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, settingsKeys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
		return m, nil

	case key.Matches(msg, settingsKeys.Down):
		if m.settingsCursor < settingCount-1 {
			m.settingsCursor++
		}
		return m, nil

	case key.Matches(msg, settingsKeys.Toggle):
		if m.backend == nil {
			return m, nil
		}
		switch m.settingsCursor {
		case settingAutoStart:
			return m, saveConfigCmd(m.backend, config.SetAutoStart(m.cfg, !m.cfg.AutoStart))
		case settingStartMinimized:
			return m, saveConfigCmd(m.backend, config.SetStartMinimized(m.cfg, !m.cfg.StartMinimized))
		case settingDarkMode:
			return m, saveConfigCmd(m.backend, config.SetDarkMode(m.cfg, !m.cfg.DarkMode))
		}
		return m, nil

	case key.Matches(msg, settingsKeys.Enter):
		if m.backend == nil {
			return m, nil
		}
		if m.settingsCursor == settingAPIKey {
			m.openAPIKeyInput()
		}
		return m, nil

	case key.Matches(msg, settingsKeys.Delete):
		if m.backend == nil || m.settingsCursor != settingAPIKey || !m.hasAPIKey {
			return m, nil
		}
		m.confirmMode = confirmDeleteKey
		return m, nil
	}

	return m, nil
}

func renderSettings(m *Model, width int) string {
	rows := []string{
		renderAPIKeyRow(m),
		renderToggleRow("Launch at login", m.cfg.AutoStart),
		renderToggleRow("Start minimized", m.cfg.StartMinimized),
		renderToggleRow("Dark mode", m.cfg.DarkMode),
	}

	var lines []string
	for i, row := range rows {
		if i == m.settingsCursor {
			row = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, row)
	}

	lines = append(lines, "",
		hintStyle.Render(" The API key is stored in the system keychain, with a ~/"+
			config.GlobalDirName+"/"+config.EnvFileName+" fallback."))

	return strings.Join(lines, "\n")
}

func renderAPIKeyRow(m *Model) string {
	label := settingsLabelStyle.Render("OpenAI API Key:")
	if m.hasAPIKey {
		return " " + label + " " + settingsValueStyle.Render(m.apiKeyMasked)
	}
	return " " + label + " " + hintStyle.Render("(not set)")
}

func renderToggleRow(label string, on bool) string {
	val := settingsToggleOff.Render("[OFF]")
	if on {
		val = settingsToggleOn.Render("[ON]")
	}
	return " " + settingsLabelStyle.Render(label+":") + " " + val
}
