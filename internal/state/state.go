// Package state persists UI preferences between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Preview pane width as a percentage of the screen.
const (
	DefaultPreviewWidth = 45
	MinPreviewWidth     = 20
	MaxPreviewWidth     = 80
)

// State holds persistent user preferences.
type State struct {
	// Preview pane next to the list
	ShowPreview  bool `json:"showPreview"`
	PreviewWidth int  `json:"previewWidth,omitempty"` // percentage, 0 = default

	// Last settled search, restored on start when RestoreSearch is set
	LastSearch    string `json:"lastSearch,omitempty"`
	RestoreSearch bool   `json:"restoreSearch,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "notehub"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

func defaults() *State {
	return &State{PreviewWidth: DefaultPreviewWidth}
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = defaults()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk. It is a no-op before Init.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func update(fn func(s *State)) error {
	mu.Lock()
	if current == nil {
		current = defaults()
	}
	fn(current)
	mu.Unlock()
	return Save()
}

// GetShowPreview returns whether the preview pane is shown.
func GetShowPreview() bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return false
	}
	return current.ShowPreview
}

// SetShowPreview saves the preview pane preference.
func SetShowPreview(show bool) error {
	return update(func(s *State) { s.ShowPreview = show })
}

// GetPreviewWidth returns the preview pane width percentage, clamped to
// MinPreviewWidth..MaxPreviewWidth.
func GetPreviewWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.PreviewWidth == 0 {
		return DefaultPreviewWidth
	}
	return clampPreviewWidth(current.PreviewWidth)
}

// SetPreviewWidth saves the preview pane width percentage. Out of range
// values are clamped.
func SetPreviewWidth(pct int) error {
	return update(func(s *State) { s.PreviewWidth = clampPreviewWidth(pct) })
}

func clampPreviewWidth(pct int) int {
	return min(max(pct, MinPreviewWidth), MaxPreviewWidth)
}

// GetLastSearch returns the search to restore on start, or "" when
// restoring is off.
func GetLastSearch() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || !current.RestoreSearch {
		return ""
	}
	return current.LastSearch
}

// SetLastSearch records the most recent settled search.
func SetLastSearch(search string) error {
	return update(func(s *State) { s.LastSearch = search })
}
