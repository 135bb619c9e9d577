// Package status tracks the lifecycle state of managed tools and fences
// in-flight start/stop commands against status polls and each other.
package status

import (
	"sync"

	"github.com/prodhub-io/prodhub/internal/models"
	"github.com/prodhub-io/prodhub/internal/registry"
)

type cmdKind int

const (
	cmdNone cmdKind = iota
	cmdStart
	cmdStop
)

type entry struct {
	status models.ToolStatus
	// confirmed is the last non-transitional status, used for rollback
	// when an in-flight command fails.
	confirmed models.ToolStatus
	seq       uint64
	inflight  cmdKind
}

// Tracker holds the displayed status for every registered tool. Commands
// are fenced with per-tool sequence numbers: a completion for a superseded
// command is discarded, so rapid start/stop toggling cannot apply results
// out of order.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewTracker creates a tracker with every registered tool in the Checking
// state, the placeholder shown until the first real report arrives.
func NewTracker() *Tracker {
	t := &Tracker{entries: make(map[string]*entry)}
	for _, tool := range registry.List() {
		t.entries[tool.ID] = &entry{
			status:    models.StatusChecking,
			confirmed: models.StatusStopped,
		}
	}
	return t
}

// Status returns the displayed status for a tool.
func (t *Tracker) Status(id string) models.ToolStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e, ok := t.entries[id]; ok {
		return e.status
	}
	return models.StatusStopped
}

// Snapshot returns the displayed status of every tool.
func (t *Tracker) Snapshot() map[string]models.ToolStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]models.ToolStatus, len(t.entries))
	for id, e := range t.entries {
		out[id] = e.status
	}
	return out
}

// RequestStart marks a tool as Starting... and returns the sequence number
// the eventual completion must present. It supersedes any earlier in-flight
// command on the same tool.
func (t *Tracker) RequestStart(id string) uint64 {
	return t.request(id, cmdStart, models.StatusStarting)
}

// RequestStop marks a tool as Stopping... and returns the sequence number
// the eventual completion must present.
func (t *Tracker) RequestStop(id string) uint64 {
	return t.request(id, cmdStop, models.StatusStopping)
}

func (t *Tracker) request(id string, kind cmdKind, optimistic models.ToolStatus) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		e = &entry{confirmed: models.StatusStopped}
		t.entries[id] = e
	}
	if !e.status.Pending() {
		e.confirmed = e.status
	}
	e.seq++
	e.inflight = kind
	e.status = optimistic
	return e.seq
}

// Resolve applies the outcome of a start/stop command. Completions carrying
// a stale sequence number are dropped: a newer command owns the tool now.
// On success the optimistic status becomes confirmed; on failure the status
// rolls back to what it was before the command.
func (t *Tracker) Resolve(id string, seq uint64, cmdErr error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok || e.seq != seq || e.inflight == cmdNone {
		return
	}

	kind := e.inflight
	e.inflight = cmdNone
	if cmdErr != nil {
		e.status = e.confirmed
		return
	}
	if kind == cmdStart {
		e.status = models.StatusRunning
	} else {
		e.status = models.StatusStopped
	}
	e.confirmed = e.status
}

// ApplyReport overwrites statuses wholesale from a poll or scan: reported
// tools become Running, everything else Stopped. Tools with an unresolved
// in-flight command keep their optimistic status so a poll racing a command
// cannot flicker the UI.
func (t *Tracker) ApplyReport(running map[string]bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, e := range t.entries {
		if e.inflight != cmdNone {
			continue
		}
		if running[id] {
			e.status = models.StatusRunning
		} else {
			e.status = models.StatusStopped
		}
		e.confirmed = e.status
	}
}

// FailAll resolves every non-pending tool to Stopped. Used when the initial
// process scan fails: unknown is treated as not running rather than leaving
// placeholders up forever.
func (t *Tracker) FailAll() {
	t.ApplyReport(nil)
}

// Pending reports whether the tool has an unresolved command in flight.
func (t *Tracker) Pending(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[id]
	return ok && e.inflight != cmdNone
}

// CanStart decides whether the start action is available for a tool, and if
// not, why. The authorization gate comes first and overrides everything
// else.
func CanStart(tool registry.Tool, tc models.ToolConfig, authorized, hasAPIKey bool) (bool, string) {
	if !authorized {
		return false, "Start a trial or activate a license"
	}
	if !tc.Enabled {
		return false, "Enable the tool first"
	}
	if tool.Kind == registry.KindCLIHotkey && !tc.HasHotkey() {
		return false, "Select a hotkey first"
	}
	if tool.RequiresAPIKey && !hasAPIKey {
		return false, "Set API key in Settings first"
	}
	return true, ""
}
