package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodhub-io/prodhub/internal/licensing"
)

func (m *Model) handleLicenseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.backend == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, licenseKeys.Trial):
		if m.auth.Kind == licensing.AuthLicensed {
			return m, nil
		}
		return m, startTrialCmd(m.backend)

	case key.Matches(msg, licenseKeys.Activate):
		m.openLicenseInput()
		return m, nil

	case key.Matches(msg, licenseKeys.Deactivate):
		if m.auth.Kind != licensing.AuthLicensed {
			return m, nil
		}
		m.confirmMode = confirmDeactivate
		return m, nil

	case key.Matches(msg, licenseKeys.BuyMonthly):
		return m, openCheckoutCmd(m.backend, string(licensing.PlanMonthly))

	case key.Matches(msg, licenseKeys.BuyYearly):
		return m, openCheckoutCmd(m.backend, string(licensing.PlanYearly))

	case key.Matches(msg, licenseKeys.BuyLife):
		return m, openCheckoutCmd(m.backend, string(licensing.PlanLifetime))
	}

	return m, nil
}

func renderLicense(m *Model, width int) string {
	var lines []string

	if !m.authLoaded {
		return hintStyle.Render(" Loading license state...")
	}

	switch m.auth.Kind {
	case licensing.AuthLicensed:
		lines = append(lines,
			" "+authLicensedStyle.Render("✓ Licensed")+"  "+
				settingsValueStyle.Render(m.auth.Plan.Display()+" plan"),
			"",
			" "+settingsLabelStyle.Render("License key:")+" "+
				settingsValueStyle.Render(m.auth.KeyPreview),
			"",
			" "+hintStyle.Render("Press d to deactivate this license on this machine."),
		)

	case licensing.AuthTrial:
		lines = append(lines,
			" "+authTrialStyle.Render("● Trial active")+"  "+
				settingsValueStyle.Render(trialCountdown(m.auth)),
			"",
			" "+hintStyle.Render("All tools are unlocked during the trial."),
			"",
			" "+hintStyle.Render("Press a to activate a license key, or m/y/l to buy one."),
		)

	case licensing.AuthTrialExpired:
		lines = append(lines,
			" "+authExpiredStyle.Render("✗ Trial expired"),
			"",
			" "+hintStyle.Render("Tools cannot be started without a license."),
			"",
			" "+hintStyle.Render("Press a to activate a license key, or m/y/l to buy one."),
		)

	default:
		lines = append(lines,
			" "+authNoneStyle.Render("○ No license"),
			"",
			" "+hintStyle.Render("Press t to start a free "+trialLengthLabel()+" trial."),
			" "+hintStyle.Render("Press a to activate a license key, or m/y/l to buy one."),
		)
	}

	lines = append(lines, "", renderPlanTable())
	return strings.Join(lines, "\n")
}

func trialCountdown(a licensing.AuthStatus) string {
	if a.DaysRemaining > 0 {
		return fmt.Sprintf("%dd %dh remaining", a.DaysRemaining, a.HoursRemaining)
	}
	return fmt.Sprintf("%dh remaining", a.HoursRemaining)
}

func trialLengthLabel() string {
	return fmt.Sprintf("%d-day", licensing.TrialDays)
}

func renderPlanTable() string {
	rows := []string{
		" " + keyStyle.Render("m") + " " + settingsValueStyle.Render("Monthly") + "   " + hintStyle.Render("billed every month"),
		" " + keyStyle.Render("y") + " " + settingsValueStyle.Render("Yearly") + "    " + hintStyle.Render("two months free"),
		" " + keyStyle.Render("l") + " " + settingsValueStyle.Render("Lifetime") + "  " + hintStyle.Render("pay once, keep forever"),
	}
	return strings.Join(rows, "\n")
}
