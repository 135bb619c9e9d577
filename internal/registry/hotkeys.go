package registry

import (
	"strconv"

	"github.com/prodhub-io/prodhub/internal/models"
)

// namedKeys are the hotkey names the tools accept on the command line.
// Alphanumeric and modifier keys are excluded on purpose: push-to-talk
// hotkeys must not collide with typing.
var namedKeys = []string{
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"F13", "F14", "F15", "F16", "F17", "F18", "F19", "F20", "F21", "F22", "F23", "F24",
	"Insert", "Delete", "Home", "End", "PageUp", "PageDown",
	"UpArrow", "DownArrow", "LeftArrow", "RightArrow",
	"Num0", "Num1", "Num2", "Num3", "Num4", "Num5", "Num6", "Num7", "Num8", "Num9",
	"NumLock", "NumpadDivide", "NumpadMultiply", "NumpadSubtract", "NumpadAdd", "NumpadEnter",
	"Escape", "Tab", "CapsLock", "Space", "Backspace", "Return",
	"PrintScreen", "ScrollLock", "Pause",
	"MediaPlayPause", "MediaStop", "MediaPrevious", "MediaNext",
	"VolumeUp", "VolumeDown", "VolumeMute",
}

// Hotkeys returns the selectable hotkey names in menu order.
func Hotkeys() []string {
	return namedKeys
}

// ValidHotkey reports whether name is a selectable hotkey.
func ValidHotkey(name string) bool {
	for _, k := range namedKeys {
		if k == name {
			return true
		}
	}
	return false
}

// HotkeyOwner finds the tool (other than excludeID) that already uses the
// given hotkey or raw key code in cfg. Two tools holding the same key would
// both fire on one press, so assignments are rejected up front.
func HotkeyOwner(cfg *models.HubConfig, excludeID string, hotkey *string, special *uint32) (Tool, bool) {
	for _, t := range tools {
		if t.ID == excludeID || t.Kind != KindCLIHotkey {
			continue
		}
		tc := cfg.Tool(t.ID)
		if hotkey != nil && *hotkey != "" && tc.Hotkey != nil && *tc.Hotkey == *hotkey {
			return t, true
		}
		if special != nil && tc.SpecialHotkey != nil && *tc.SpecialHotkey == *special {
			return t, true
		}
	}
	return Tool{}, false
}

func formatKeyCode(code uint32) string {
	return strconv.FormatUint(uint64(code), 10)
}

func formatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'g', -1, 64)
}
