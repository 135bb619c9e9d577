// Package tui implements the interactive dashboard for the hub.
package tui

import (
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodhub-io/prodhub/internal/backend"
	"github.com/prodhub-io/prodhub/internal/config"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the dashboard against the given backend. It blocks until the
// user quits. Running tools are left alone on exit.
func Run(b backend.Backend) error {
	ref := &programRef{}
	model := NewModel(b, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)

	// GUI-managed tools edit config.json themselves; reload when they do.
	watcher, err := config.NewWatcher()
	if err == nil {
		if err := watcher.Start(); err == nil {
			defer watcher.Stop()
			go func() {
				for ev := range watcher.Events() {
					if ev.Type == config.EventConfigChanged {
						ref.Send(ConfigFileChangedMsg{})
					}
				}
			}()
		} else {
			log.Printf("Config watcher unavailable: %v", err)
		}
	} else {
		log.Printf("Config watcher unavailable: %v", err)
	}

	_, err = p.Run()
	ref.Clear()
	return err
}
