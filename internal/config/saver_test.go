package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// "profiles" is not managed by Save
	initial := []byte(`{
  "profiles": [
    {"name": "staging", "baseUrl": "https://staging.example.com"}
  ],
  "customKey": "should survive"
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	if _, ok := raw["profiles"]; !ok {
		t.Error("Save() deleted 'profiles' key from config.json")
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("Save() deleted 'customKey' from config.json")
	}

	var profiles []map[string]interface{}
	if err := json.Unmarshal(raw["profiles"], &profiles); err != nil {
		t.Fatalf("unmarshal profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0]["name"] != "staging" {
		t.Errorf("profiles changed: %v", profiles)
	}

	for _, k := range []string{"api", "list", "ui"} {
		if _, ok := raw[k]; !ok {
			t.Errorf("Save() did not write %q key", k)
		}
	}
}

func TestSave_WorksWithNoExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := Save(Default()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("got mode %v, want 0600", perm)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.API.BaseURL = "https://notes.example.com"
	cfg.API.Timeout = 4 * time.Second
	cfg.List.PerPage = 25
	cfg.List.SearchDebounce = 0
	cfg.UI.ShowFooter = false
	cfg.Keymap.Overrides["N"] = "new-note"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if os.Getenv(EnvBaseURL) == "" && got.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("base URL = %q", got.API.BaseURL)
	}
	if got.API.Timeout != 4*time.Second {
		t.Errorf("timeout = %v", got.API.Timeout)
	}
	if os.Getenv(EnvPerPage) == "" && got.List.PerPage != 25 {
		t.Errorf("perPage = %d", got.List.PerPage)
	}
	if got.List.SearchDebounce != 0 {
		t.Errorf("debounce = %v, want 0", got.List.SearchDebounce)
	}
	if got.UI.ShowFooter {
		t.Error("showFooter should round-trip as false")
	}
	if got.Keymap.Overrides["N"] != "new-note" {
		t.Errorf("override lost: %v", got.Keymap.Overrides)
	}
}

func TestSaveTo_EmptyPath(t *testing.T) {
	if err := SaveTo("", Default()); err == nil {
		t.Error("expected error for empty path")
	}
}
