// Package proc manages the lifecycle of tool processes: spawning, stopping,
// and detecting copies started outside the hub.
package proc

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/keystore"
	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
)

// Manager tracks tool processes. Two maps, as the tools have two origins:
// processes the hub spawned (and holds handles for) and externally started
// processes adopted by PID during a scan.
type Manager struct {
	mu       sync.Mutex
	spawned  map[string]*process // keyed by tool ID
	external map[string]int      // tool ID -> adopted PID

	// resolveBinary is replaceable in tests.
	resolveBinary func(tool registry.Tool) (string, error)

	scans singleflight.Group
}

// NewManager creates an empty manager. No scan happens here; callers run
// FullScan once at startup to adopt already-running tools.
func NewManager() *Manager {
	return &Manager{
		spawned:       make(map[string]*process),
		external:      make(map[string]int),
		resolveBinary: findBinary,
	}
}

// Start launches a tool with the given configuration. Starting a tool that
// is already running (spawned or adopted) is a no-op. The call blocks for a
// short grace period so a tool that dies immediately, bad flags or a missing
// key, reports its stderr as the error instead of flashing Running.
func (m *Manager) Start(tool registry.Tool, tc models.ToolConfig) error {
	m.mu.Lock()
	if p, ok := m.spawned[tool.ID]; ok {
		if !p.exited() {
			m.mu.Unlock()
			return nil
		}
		delete(m.spawned, tool.ID)
	}
	if pid, ok := m.external[tool.ID]; ok {
		if pidAlive(pid) {
			m.mu.Unlock()
			return nil
		}
		delete(m.external, tool.ID)
	}
	m.mu.Unlock()

	binPath, err := m.resolveBinary(tool)
	if err != nil {
		return fmt.Errorf("could not find binary for %s: %w", tool.Name, err)
	}

	log.Printf("Starting %s from %s", tool.Name, binPath)

	cmd := exec.Command(binPath, tool.Args(tc)...)
	cmd.Env = os.Environ()
	if tool.RequiresAPIKey {
		if key, err := keystore.Load(); err == nil {
			cmd.Env = append(cmd.Env, keystore.EnvVar+"="+key)
		}
	}

	p, err := startProcess(cmd)
	if err != nil {
		return fmt.Errorf("failed to spawn %s: %w", tool.Name, err)
	}

	// Grace period: catch immediate exits (bad hotkey flag, invalid key).
	time.Sleep(500 * time.Millisecond)
	if p.exited() {
		if msg := p.stderrHead(5); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("%s exited immediately: %v", tool.Name, p.exitErr)
	}

	m.mu.Lock()
	m.spawned[tool.ID] = p
	m.mu.Unlock()
	return nil
}

// Stop terminates a tool, whether the hub spawned it or adopted it. Blocks
// until the process is gone.
func (m *Manager) Stop(tool registry.Tool) error {
	m.mu.Lock()
	p, spawnedOK := m.spawned[tool.ID]
	pid, externalOK := m.external[tool.ID]
	m.mu.Unlock()

	if spawnedOK {
		p.stop()
		m.mu.Lock()
		delete(m.spawned, tool.ID)
		m.mu.Unlock()
		log.Printf("Stopped %s", tool.Name)
		return nil
	}

	if externalOK {
		if err := stopPID(pid); err != nil {
			return fmt.Errorf("failed to stop %s (pid %d): %w", tool.Name, pid, err)
		}
		m.mu.Lock()
		delete(m.external, tool.ID)
		m.mu.Unlock()
		log.Printf("Stopped external %s (pid %d)", tool.Name, pid)
		return nil
	}

	return fmt.Errorf("%s is not running", tool.Name)
}

// Launch starts a tool's binary without tracking or configuring it. Used
// to open the settings window of GUI-managed tools, which are
// single-instance and surface their window when launched again.
func (m *Manager) Launch(tool registry.Tool) error {
	binPath, err := m.resolveBinary(tool)
	if err != nil {
		return fmt.Errorf("could not find binary for %s: %w", tool.Name, err)
	}

	cmd := exec.Command(binPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", tool.Name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// StopAll stops every tool the hub spawned. Adopted external processes are
// left alone; the hub didn't start them.
func (m *Manager) StopAll() {
	m.mu.Lock()
	procs := make([]*process, 0, len(m.spawned))
	for id, p := range m.spawned {
		procs = append(procs, p)
		delete(m.spawned, id)
	}
	m.mu.Unlock()

	for _, p := range procs {
		p.stop()
	}
}

// Running reports whether a tool is currently running, without shelling out.
func (m *Manager) Running(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.spawned[id]; ok && !p.exited() {
		return true
	}
	_, ok := m.external[id]
	return ok
}

// Refresh is the cheap status pass used by the 2s poll: spawned processes
// are checked via their exit channel, adopted ones are trusted until the
// next full scan. Returns the running set keyed by tool ID.
func (m *Manager) Refresh() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	running := make(map[string]bool)
	for id, p := range m.spawned {
		if p.exited() {
			delete(m.spawned, id)
			continue
		}
		running[id] = true
	}
	for id := range m.external {
		running[id] = true
	}
	return running
}

// FullScan walks the system process table once, drops adopted PIDs that
// died, and adopts newly found tool binaries. Expensive, so concurrent
// callers share a single scan. Returns the running set keyed by tool ID.
func (m *Manager) FullScan() (map[string]bool, error) {
	v, err, _ := m.scans.Do("scan", func() (interface{}, error) {
		table, err := listProcesses()
		if err != nil {
			return nil, err
		}
		m.reconcile(table)
		return m.Refresh(), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]bool), nil
}

func (m *Manager) reconcile(table map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, pid := range m.external {
		tool, ok := registry.Find(id)
		if !ok {
			delete(m.external, id)
			continue
		}
		if foundPID, ok := table[exeName(tool)]; !ok || foundPID != pid {
			delete(m.external, id)
		}
	}

	for _, tool := range registry.List() {
		if _, ok := m.spawned[tool.ID]; ok {
			continue
		}
		if _, ok := m.external[tool.ID]; ok {
			continue
		}
		if pid, ok := table[exeName(tool)]; ok {
			log.Printf("Detected already-running %s: PID %d", tool.Name, pid)
			m.external[tool.ID] = pid
		}
	}
}

// exeName returns the lowercased executable name a scan would report.
func exeName(tool registry.Tool) string {
	if runtime.GOOS == "windows" {
		return tool.Binary + ".exe"
	}
	return tool.Binary
}

// findBinary locates a tool executable. Check order: settings.yaml
// override, next to the hub binary, a tools/ subdirectory, then PATH.
func findBinary(tool registry.Tool) (string, error) {
	name := exeName(tool)

	if settings, err := config.LoadSettings(); err == nil {
		if override := settings.ToolPath(tool.ID); override != "" {
			if _, err := os.Stat(override); err == nil {
				return override, nil
			}
		}
	}

	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates := []string{
			filepath.Join(exeDir, name),
			filepath.Join(exeDir, "tools", name),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				return c, nil
			}
		}
	}

	if path, err := exec.LookPath(tool.Binary); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s not found. Install it next to the hub or set its path in ~/%s/%s",
		name, config.GlobalDirName, config.SettingsFileName)
}
