package config

import (
	"sync"

	"github.com/prodhub-io/prodhub/internal/models"
)

// Store holds the hub configuration and its in-memory cache. Saves always
// write the whole document; the cache is replaced only after a successful
// write, so a failed save never leaves the cache ahead of the file.
type Store struct {
	mu     sync.RWMutex
	cached *models.HubConfig
}

// NewStore creates a store with an empty default cache. Call Load before
// trusting Cached.
func NewStore() *Store {
	return &Store{cached: models.NewHubConfig()}
}

// Load reads config.json from disk, replacing the cache. A missing file
// yields defaults; a malformed file is an error and leaves the cache as is.
func (s *Store) Load() (*models.HubConfig, error) {
	path, err := GlobalConfigFile()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadJSONOrDefault(path, models.NewHubConfig)
	if err != nil {
		return nil, err
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]models.ToolConfig{}
	}

	s.mu.Lock()
	s.cached = cfg
	s.mu.Unlock()
	return cfg.Clone(), nil
}

// Cached returns a copy of the last loaded or saved configuration.
func (s *Store) Cached() *models.HubConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached.Clone()
}

// Save writes the complete document to disk and, on success, makes it the
// new cache.
func (s *Store) Save(cfg *models.HubConfig) error {
	path, err := GlobalConfigFile()
	if err != nil {
		return err
	}
	if err := SaveJSON(path, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = cfg.Clone()
	s.mu.Unlock()
	return nil
}
