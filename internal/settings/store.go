// Package settings persists the user-editable filter settings and turns them
// into the configuration each scan runs with.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings are the persisted overrides. Nil fields fall back to defaults.
type Settings struct {
	MinKarma   *int  `yaml:"min_karma,omitempty"`
	HideIntros *bool `yaml:"hide_intros,omitempty"`
}

// Store is a small YAML-backed key-value store for Settings.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the stored settings. A missing file yields empty settings.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Settings, error) {
	var st Settings
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return st, nil
}

// Set merges the non-nil fields of update into the stored settings.
func (s *Store) Set(update Settings) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return Settings{}, err
	}
	if update.MinKarma != nil {
		current.MinKarma = update.MinKarma
	}
	if update.HideIntros != nil {
		current.HideIntros = update.HideIntros
	}

	data, err := yaml.Marshal(current)
	if err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Settings{}, fmt.Errorf("create settings dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return Settings{}, fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return Settings{}, fmt.Errorf("replace settings: %w", err)
	}
	return current, nil
}
