package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	API    saveAPIConfig  `json:"api"`
	List   saveListConfig `json:"list"`
	Keymap KeymapConfig   `json:"keymap"`
	UI     saveUIConfig   `json:"ui"`
	Log    LogConfig      `json:"log"`
}

type saveAPIConfig struct {
	BaseURL string `json:"baseUrl,omitempty"`
	Token   string `json:"token,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type saveListConfig struct {
	PerPage        int    `json:"perPage,omitempty"`
	SearchDebounce string `json:"searchDebounce,omitempty"`
}

type saveUIConfig struct {
	ShowFooter    bool              `json:"showFooter"`
	Theme         string            `json:"theme,omitempty"`
	Colors        map[string]string `json:"colors,omitempty"`
	GlamourStyle  string            `json:"glamourStyle,omitempty"`
	ToastDuration string            `json:"toastDuration,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		API: saveAPIConfig{
			BaseURL: cfg.API.BaseURL,
			Token:   cfg.API.Token,
			Timeout: cfg.API.Timeout.String(),
		},
		List: saveListConfig{
			PerPage:        cfg.List.PerPage,
			SearchDebounce: cfg.List.SearchDebounce.String(),
		},
		Keymap: cfg.Keymap,
		UI: saveUIConfig{
			ShowFooter:    cfg.UI.ShowFooter,
			Theme:         cfg.UI.Theme,
			Colors:        cfg.UI.Colors,
			GlamourStyle:  cfg.UI.GlamourStyle,
			ToastDuration: cfg.UI.ToastDuration.String(),
		},
		Log: cfg.Log,
	}
}

// Save writes the config to ConfigPath, keeping top-level keys it does not
// manage.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("save config: no path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// Unparseable files are replaced wholesale.
		_ = json.Unmarshal(existing, &merged)
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	// The file may hold an API token.
	return os.WriteFile(path, data, 0600)
}
