package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit key.Binding
	Help key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q", "q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// TabKeys switch between the main tabs.
type TabKeys struct {
	Tab1  key.Binding
	Tab2  key.Binding
	Tab3  key.Binding
	Cycle key.Binding
}

var tabKeys = TabKeys{
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Tools"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Settings"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "License"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch tab"),
	),
}

// ToolKeys are active on the Tools tab.
type ToolKeys struct {
	Up           key.Binding
	Down         key.Binding
	Start        key.Binding
	Stop         key.Binding
	Enable       key.Binding
	AutoStart    key.Binding
	Hotkey       key.Binding
	Voice        key.Binding
	Speed        key.Binding
	OpenSettings key.Binding
}

var toolKeys = ToolKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Start: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "start"),
	),
	Stop: key.NewBinding(
		key.WithKeys("S", "x"),
		key.WithHelp("S", "stop"),
	),
	Enable: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "enable/disable"),
	),
	AutoStart: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "auto-start"),
	),
	Hotkey: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hotkey"),
	),
	Voice: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "voice"),
	),
	Speed: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "speed"),
	),
	OpenSettings: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "tool settings"),
	),
}

// SettingsKeys are active on the Settings tab.
type SettingsKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Enter  key.Binding
	Delete key.Binding
}

var settingsKeys = SettingsKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete key"),
	),
}

// LicenseKeys are active on the License tab.
type LicenseKeys struct {
	Trial      key.Binding
	Activate   key.Binding
	Deactivate key.Binding
	BuyMonthly key.Binding
	BuyYearly  key.Binding
	BuyLife    key.Binding
}

var licenseKeys = LicenseKeys{
	Trial: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "start trial"),
	),
	Activate: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a", "activate key"),
	),
	Deactivate: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deactivate"),
	),
	BuyMonthly: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "buy monthly"),
	),
	BuyYearly: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "buy yearly"),
	),
	BuyLife: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "buy lifetime"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Save   key.Binding
	Cancel key.Binding
}

var overlayKeys = OverlayKeys{
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}

// ConfirmKeys for inline confirmation prompts.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var confirmKeys = ConfirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "cancel"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
