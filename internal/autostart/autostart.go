// Package autostart registers the hub to launch at login so the tray and
// its auto-start tools come up with the desktop session.
package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const (
	appName = "ProdHub"
	// runKey is the per-user Run key Windows consults at login.
	runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`
)

// Sync brings the login entry in line with the config flag. Called after
// every config save; both directions are idempotent.
func Sync(enabled bool) error {
	if enabled {
		return Install()
	}
	return Remove()
}

// Install registers "prodhub tray" to run at login.
func Install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if runtime.GOOS == "windows" {
		cmd := exec.Command("reg", "add", runKey, "/v", appName, "/t", "REG_SZ",
			"/d", fmt.Sprintf(`"%s" tray`, exe), "/f")
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to write Run key: %v: %s", err, out)
		}
		return nil
	}

	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, []byte(entryContent(exe)), 0644)
}

// Remove deregisters the login entry. Removing an entry that was never
// installed is a no-op.
func Remove() error {
	if runtime.GOOS == "windows" {
		// reg delete fails when the value is absent, which counts as removed.
		_ = exec.Command("reg", "delete", runKey, "/v", appName, "/f").Run()
		return nil
	}

	path, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// entryPath returns where the login entry lives on this platform: an XDG
// autostart desktop entry, or a LaunchAgent on macOS.
func entryPath() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "LaunchAgents", "io.prodhub.tray.plist"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart", "prodhub.desktop"), nil
}

func entryContent(exe string) string {
	if runtime.GOOS == "darwin" {
		return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>io.prodhub.tray</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>tray</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, exe)
	}
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Productivity Hub
Exec="%s" tray
X-GNOME-Autostart-enabled=true
`, exe)
}
