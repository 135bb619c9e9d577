package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prodhub-io/prodhub/internal/licensing"
)

func renderHeader(m *Model, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Productivity Hub")

	tabs := renderTabs([]string{"Tools", "Settings", "License"}, m.tab)
	badge := renderAuthBadge(m)

	left := fmt.Sprintf(" %s %s  %s", dot, name, tabs)
	right := fmt.Sprintf("%s ", badge)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderTabs(tabs []string, active int) string {
	var parts []string
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeTabStyle.Render(tab))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(parts, tabSepStyle.Render(" | "))
}

func renderAuthBadge(m *Model) string {
	if !m.authLoaded {
		return authNoneStyle.Render("● ...")
	}

	switch m.auth.Kind {
	case licensing.AuthLicensed:
		plan := m.auth.Plan.Display()
		if plan == "" {
			return authLicensedStyle.Render("● Licensed")
		}
		return authLicensedStyle.Render("● " + plan)
	case licensing.AuthTrial:
		if m.auth.DaysRemaining > 0 {
			return authTrialStyle.Render(fmt.Sprintf("● Trial: %dd %dh", m.auth.DaysRemaining, m.auth.HoursRemaining))
		}
		return authTrialStyle.Render(fmt.Sprintf("● Trial: %dh", m.auth.HoursRemaining))
	case licensing.AuthTrialExpired:
		return authExpiredStyle.Render("● Trial expired")
	default:
		return authNoneStyle.Render("● Unlicensed")
	}
}
