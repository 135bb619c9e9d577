package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestEmptyAPIKeySubmissionShowsError(t *testing.T) {
	m := NewModel(nil, nil)
	m.openAPIKeyInput()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(*Model)

	require.Equal(t, overlayNone, got.activeOverlay)
	require.EqualError(t, got.err, "API key is empty")
}

func TestWhitespaceLicenseKeySubmissionShowsError(t *testing.T) {
	m := NewModel(nil, nil)
	m.openLicenseInput()
	m.input.SetValue("   ")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(*Model)

	require.Equal(t, overlayNone, got.activeOverlay)
	require.EqualError(t, got.err, "license key is empty")
}

func TestOverlayCancelDoesNotReportError(t *testing.T) {
	m := NewModel(nil, nil)
	m.openAPIKeyInput()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updated.(*Model)

	require.Equal(t, overlayNone, got.activeOverlay)
	require.NoError(t, got.err)
}
