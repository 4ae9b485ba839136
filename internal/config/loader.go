package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	configDir  = ".config/notehub"
	configFile = "config.json"

	EnvBaseURL = "NOTEHUB_API_URL"
	EnvToken   = "NOTEHUB_TOKEN"
	EnvPerPage = "NOTEHUB_PER_PAGE"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	API    rawAPIConfig  `json:"api"`
	List   rawListConfig `json:"list"`
	Keymap KeymapConfig  `json:"keymap"`
	UI     rawUIConfig   `json:"ui"`
	Log    LogConfig     `json:"log"`
}

type rawAPIConfig struct {
	BaseURL string `json:"baseUrl"`
	Token   string `json:"token"`
	Timeout string `json:"timeout"`
}

type rawListConfig struct {
	PerPage        *int   `json:"perPage"`
	SearchDebounce string `json:"searchDebounce"`
}

type rawUIConfig struct {
	ShowFooter    *bool             `json:"showFooter"`
	Theme         string            `json:"theme"`
	Colors        map[string]string `json:"colors"`
	GlamourStyle  string            `json:"glamourStyle"`
	ToastDuration string            `json:"toastDuration"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/notehub/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, err
		default:
			var raw rawConfig
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			mergeConfig(cfg, &raw)
		}
	}

	applyEnv(cfg, os.LookupEnv)

	cfg.Log.Path = ExpandPath(cfg.Log.Path)
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// API
	if raw.API.BaseURL != "" {
		cfg.API.BaseURL = raw.API.BaseURL
	}
	if raw.API.Token != "" {
		cfg.API.Token = raw.API.Token
	}
	if d, ok := parseDuration("api.timeout", raw.API.Timeout); ok {
		cfg.API.Timeout = d
	}

	// List
	if raw.List.PerPage != nil {
		cfg.List.PerPage = *raw.List.PerPage
	}
	if d, ok := parseDuration("list.searchDebounce", raw.List.SearchDebounce); ok {
		cfg.List.SearchDebounce = d
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	for k, v := range raw.UI.Colors {
		cfg.UI.Colors[k] = v
	}
	if raw.UI.GlamourStyle != "" {
		cfg.UI.GlamourStyle = raw.UI.GlamourStyle
	}
	if d, ok := parseDuration("ui.toastDuration", raw.UI.ToastDuration); ok {
		cfg.UI.ToastDuration = d
	}

	// Log
	if raw.Log.Path != "" {
		cfg.Log.Path = raw.Log.Path
	}
}

func parseDuration(field, s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		slog.Warn("ignoring invalid duration", "field", field, "value", s, "err", err)
		return 0, false
	}
	return d, true
}

// applyEnv overlays environment variables on top of file values.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := lookup(EnvToken); ok && v != "" {
		cfg.API.Token = v
	}
	if v, ok := lookup(EnvPerPage); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("ignoring invalid per-page override", "value", v)
			return
		}
		cfg.List.PerPage = n
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// SetTestConfigPath points ConfigPath at path. Tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }
