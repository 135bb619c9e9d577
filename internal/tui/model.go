package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prodhub-io/prodhub/internal/backend"
	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/licensing"
	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
	"github.com/prodhub-io/prodhub/internal/status"
)

// Tabs.
const (
	tabTools = iota
	tabSettings
	tabLicense
	tabCount
)

// Overlay constants.
const (
	overlayNone = iota
	overlayHotkey
	overlayVoice
	overlaySpeed
	overlayAPIKey
	overlayLicense
)

// Model is the root Bubbletea model for the dashboard. All mutation happens
// in Update; commands run against the backend off the UI loop and come back
// as messages.
type Model struct {
	backend backend.Backend
	program *programRef

	width  int
	height int

	// UI state
	tab            int // tabTools, tabSettings, tabLicense
	cursor         int
	settingsCursor int

	// Tool state
	tracker *status.Tracker
	cfg     *models.HubConfig

	// scanned flips when the one-time full scan resolves; the periodic
	// poll starts only then, so a poll can never race the scan.
	scanned bool

	// License state
	auth       licensing.AuthStatus
	authLoaded bool

	// API key state
	hasAPIKey    bool
	apiKeyMasked string

	// Overlay state
	activeOverlay int
	overlayToolID string
	pickerItems   []string
	pickerCursor  int
	input         textinput.Model

	// Confirm mode
	confirmMode   int
	confirmToolID string

	// Status display
	err       error
	showSaved bool
	showHelp  bool
}

// NewModel creates the initial dashboard model. A nil backend renders a
// static placeholder; every command becomes a no-op.
func NewModel(b backend.Backend, program *programRef) *Model {
	return &Model{
		backend: b,
		program: program,
		tracker: status.NewTracker(),
		cfg:     models.NewHubConfig(),
	}
}

// Init starts the load sequence: config, auth, API key state, and the
// one-time full process scan. The poll loop is chained off the scan result.
func (m *Model) Init() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return tea.Batch(
		loadConfigCmd(m.backend),
		loadAuthStatusCmd(m.backend),
		loadAPIKeyStateCmd(m.backend),
		initialScanCmd(m.backend),
	)
}

// Update processes messages and returns an updated model and commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConfigLoadedMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		m.cfg = msg.Config
		return m, nil

	case ConfigSavedMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		m.cfg = msg.Config
		m.showSaved = true
		return m, clearSavedAfter(2 * time.Second)

	case AuthStatusMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		m.auth = msg.Status
		m.authLoaded = true
		// An unauthorized hub forces the license tab forward so the gate
		// is never missed.
		if !m.auth.Authorized() {
			m.tab = tabLicense
		}
		return m, nil

	case APIKeyStateMsg:
		m.hasAPIKey = msg.Has
		m.apiKeyMasked = msg.Masked
		return m, nil

	case ScanCompletedMsg:
		m.scanned = true
		if msg.Err != nil {
			// Unknown is treated as not running.
			m.tracker.FailAll()
		} else {
			m.tracker.ApplyReport(msg.Running)
		}
		return m, pollStatusTick()

	case TickMsg:
		if m.backend == nil {
			return m, nil
		}
		return m, tea.Batch(pollStatusesCmd(m.backend), pollStatusTick())

	case StatusReportMsg:
		if msg.Err == nil {
			m.tracker.ApplyReport(msg.Running)
		}
		return m, nil

	case ToolCommandDoneMsg:
		m.tracker.Resolve(msg.ID, msg.Seq, msg.Err)
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		return m, nil

	case ToolSettingsOpenedMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		return m, nil

	case TrialStartedMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		// Authorization is re-derived from the store, never assumed.
		return m, loadAuthStatusCmd(m.backend)

	case LicenseChangedMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		m.auth = msg.Status
		m.authLoaded = true
		if !m.auth.Authorized() {
			m.tab = tabLicense
		}
		return m, nil

	case CheckoutOpenedMsg:
		if msg.Err != nil {
			return m, m.reportError(msg.Err)
		}
		return m, nil

	case ConfigFileChangedMsg:
		if m.backend == nil {
			return m, nil
		}
		return m, loadConfigCmd(m.backend)

	case ErrorMsg:
		return m, m.reportError(msg.Err)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil
	}

	return m, nil
}

func (m *Model) reportError(err error) tea.Cmd {
	m.err = err
	return clearErrorAfter(5 * time.Second)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, tabKeys.Tab1):
		m.tab = tabTools
		return m, nil
	case key.Matches(msg, tabKeys.Tab2):
		m.tab = tabSettings
		return m, nil
	case key.Matches(msg, tabKeys.Tab3):
		m.tab = tabLicense
		return m, nil
	case key.Matches(msg, tabKeys.Cycle):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	}

	switch m.tab {
	case tabTools:
		return m.handleToolsKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	case tabLicense:
		return m.handleLicenseKey(msg)
	}
	return m, nil
}

func (m *Model) handleToolsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tools := registry.List()
	tool := tools[m.cursor]
	tc := m.cfg.Tool(tool.ID)

	switch {
	case key.Matches(msg, toolKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, toolKeys.Down):
		if m.cursor < len(tools)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, toolKeys.Start):
		st := m.tracker.Status(tool.ID)
		if m.backend == nil || st.Pending() || st.Running() {
			return m, nil
		}
		if ok, reason := status.CanStart(tool, tc, m.auth.Authorized(), m.hasAPIKey); !ok {
			return m, m.reportError(fmt.Errorf("%s", reason))
		}
		seq := m.tracker.RequestStart(tool.ID)
		return m, startToolCmd(m.backend, tool.ID, seq)

	case key.Matches(msg, toolKeys.Stop):
		if m.backend == nil || !m.tracker.Status(tool.ID).Running() {
			return m, nil
		}
		m.confirmMode = confirmStop
		m.confirmToolID = tool.ID
		return m, nil

	case key.Matches(msg, toolKeys.Enable):
		if m.backend == nil {
			return m, nil
		}
		return m, saveConfigCmd(m.backend, config.SetToolEnabled(m.cfg, tool.ID, !tc.Enabled))

	case key.Matches(msg, toolKeys.AutoStart):
		if m.backend == nil {
			return m, nil
		}
		return m, saveConfigCmd(m.backend, config.SetToolAutoStart(m.cfg, tool.ID, !tc.AutoStart))

	case key.Matches(msg, toolKeys.Hotkey):
		if m.backend == nil || tool.Kind != registry.KindCLIHotkey {
			return m, nil
		}
		m.openHotkeyPicker(tool.ID)
		return m, nil

	case key.Matches(msg, toolKeys.Voice):
		if m.backend == nil || !tool.HasVoiceOptions {
			return m, nil
		}
		m.openVoicePicker(tool.ID)
		return m, nil

	case key.Matches(msg, toolKeys.Speed):
		if m.backend == nil || !tool.HasVoiceOptions {
			return m, nil
		}
		m.openSpeedInput(tool.ID, tc)
		return m, nil

	case key.Matches(msg, toolKeys.OpenSettings):
		if m.backend == nil || !tool.GUIManaged() {
			return m, nil
		}
		return m, openToolSettingsCmd(m.backend, tool.ID)
	}

	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode := m.confirmMode
		toolID := m.confirmToolID
		m.confirmMode = confirmNone
		m.confirmToolID = ""

		if m.backend == nil {
			return m, nil
		}
		switch mode {
		case confirmStop:
			seq := m.tracker.RequestStop(toolID)
			return m, stopToolCmd(m.backend, toolID, seq)
		case confirmDeleteKey:
			return m, deleteAPIKeyCmd(m.backend)
		case confirmDeactivate:
			return m, deactivateLicenseCmd(m.backend)
		}
		return m, nil

	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
		m.confirmToolID = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) openHotkeyPicker(toolID string) {
	m.activeOverlay = overlayHotkey
	m.overlayToolID = toolID
	m.pickerItems = append([]string{"(none)"}, registry.Hotkeys()...)
	m.pickerCursor = 0

	if tc := m.cfg.Tool(toolID); tc.Hotkey != nil {
		for i, item := range m.pickerItems {
			if item == *tc.Hotkey {
				m.pickerCursor = i
				break
			}
		}
	}
}

func (m *Model) openVoicePicker(toolID string) {
	m.activeOverlay = overlayVoice
	m.overlayToolID = toolID
	m.pickerItems = append([]string{"(default)"}, registry.Voices()...)
	m.pickerCursor = 0

	if tc := m.cfg.Tool(toolID); tc.Voice != nil {
		for i, item := range m.pickerItems {
			if item == *tc.Voice {
				m.pickerCursor = i
				break
			}
		}
	}
}

func (m *Model) openSpeedInput(toolID string, tc models.ToolConfig) {
	m.activeOverlay = overlaySpeed
	m.overlayToolID = toolID
	m.input = textinput.New()
	m.input.Placeholder = "1.0"
	m.input.CharLimit = 5
	m.input.Width = 10
	if tc.SpeechSpeed != nil {
		m.input.SetValue(strconv.FormatFloat(*tc.SpeechSpeed, 'g', -1, 64))
	}
	m.input.Focus()
}

func (m *Model) openAPIKeyInput() {
	m.activeOverlay = overlayAPIKey
	m.input = textinput.New()
	m.input.Placeholder = "sk-..."
	m.input.EchoMode = textinput.EchoPassword
	m.input.CharLimit = 200
	m.input.Width = 48
	m.input.Focus()
}

func (m *Model) openLicenseInput() {
	m.activeOverlay = overlayLicense
	m.input = textinput.New()
	m.input.Placeholder = "XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX"
	m.input.CharLimit = 64
	m.input.Width = 44
	m.input.Focus()
}

func (m *Model) closeOverlay() {
	m.activeOverlay = overlayNone
	m.overlayToolID = ""
	m.pickerItems = nil
	m.pickerCursor = 0
	m.input.Blur()
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, overlayKeys.Cancel) {
		m.closeOverlay()
		return m, nil
	}

	switch m.activeOverlay {
	case overlayHotkey, overlayVoice:
		return m.handlePickerKey(msg)

	case overlaySpeed:
		if key.Matches(msg, overlayKeys.Save) {
			toolID := m.overlayToolID
			raw := strings.TrimSpace(m.input.Value())
			m.closeOverlay()
			if raw == "" {
				return m, saveConfigCmd(m.backend, config.SetToolSpeechSpeed(m.cfg, toolID, nil))
			}
			speed, err := strconv.ParseFloat(raw, 64)
			if err != nil || speed < 0.25 || speed > 4.0 {
				return m, m.reportError(fmt.Errorf("speech speed must be a number between 0.25 and 4.0"))
			}
			return m, saveConfigCmd(m.backend, config.SetToolSpeechSpeed(m.cfg, toolID, &speed))
		}

	case overlayAPIKey:
		if key.Matches(msg, overlayKeys.Save) {
			apiKey := strings.TrimSpace(m.input.Value())
			m.closeOverlay()
			if apiKey == "" {
				return m, m.reportError(fmt.Errorf("API key is empty"))
			}
			return m, saveAPIKeyCmd(m.backend, apiKey)
		}

	case overlayLicense:
		if key.Matches(msg, overlayKeys.Save) {
			licenseKey := strings.TrimSpace(m.input.Value())
			m.closeOverlay()
			if licenseKey == "" {
				return m, m.reportError(fmt.Errorf("license key is empty"))
			}
			return m, activateLicenseCmd(m.backend, licenseKey)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, toolKeys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil

	case key.Matches(msg, toolKeys.Down):
		if m.pickerCursor < len(m.pickerItems)-1 {
			m.pickerCursor++
		}
		return m, nil

	case key.Matches(msg, overlayKeys.Save):
		overlay := m.activeOverlay
		toolID := m.overlayToolID
		cleared := m.pickerCursor == 0
		choice := m.pickerItems[m.pickerCursor]
		m.closeOverlay()

		if overlay == overlayHotkey {
			name := choice
			if cleared {
				name = ""
			}
			if name != "" {
				if owner, taken := registry.HotkeyOwner(m.cfg, toolID, &name, nil); taken {
					return m, m.reportError(fmt.Errorf("%s is already used by %s", name, owner.Name))
				}
			}
			return m, saveConfigCmd(m.backend, config.SetToolHotkey(m.cfg, toolID, name))
		}

		voice := choice
		if cleared {
			voice = ""
		}
		return m, saveConfigCmd(m.backend, config.SetToolVoice(m.cfg, toolID, voice))
	}
	return m, nil
}

// View renders the full dashboard.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	header := renderHeader(m, m.width)
	statusBar := renderStatusBar(m, m.width)

	var content string
	switch m.tab {
	case tabTools:
		content = renderToolList(m, m.width)
	case tabSettings:
		content = renderSettings(m, m.width)
	case tabLicense:
		content = renderLicense(m, m.width)
	}

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body := lipgloss.NewStyle().Height(bodyHeight).Render(content)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)

	if m.showHelp {
		return renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	if m.activeOverlay != overlayNone {
		return renderOverlay(view, renderActiveOverlay(m), m.width, m.height)
	}
	return view
}
