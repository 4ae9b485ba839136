package config

import "time"

// Config is the root configuration structure.
type Config struct {
	API    APIConfig    `json:"api"`
	List   ListConfig   `json:"list"`
	Keymap KeymapConfig `json:"keymap"`
	UI     UIConfig     `json:"ui"`
	Log    LogConfig    `json:"log"`
}

// APIConfig configures the notes API connection.
type APIConfig struct {
	BaseURL string        `json:"baseUrl"`
	Token   string        `json:"token"`
	Timeout time.Duration `json:"timeout"`
}

// ListConfig configures the note list query.
type ListConfig struct {
	PerPage        int           `json:"perPage"`
	SearchDebounce time.Duration `json:"searchDebounce"`
}

// KeymapConfig holds key binding overrides, key to command name.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter    bool              `json:"showFooter"`
	Theme         string            `json:"theme"`        // "dark" or "light"
	Colors        map[string]string `json:"colors"`       // palette key to hex color
	GlamourStyle  string            `json:"glamourStyle"` // empty follows the theme
	ToastDuration time.Duration     `json:"toastDuration"`
}

// LogConfig configures the client log file. The terminal belongs to the UI, so
// logs never go to stderr while it runs.
type LogConfig struct {
	Path string `json:"path"`
}

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultTimeout        = 15 * time.Second
	DefaultPerPage        = 12
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultToastDuration  = 3 * time.Second
	DefaultTheme          = "dark"
	MaxPerPage            = 100
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		List: ListConfig{
			PerPage:        DefaultPerPage,
			SearchDebounce: DefaultSearchDebounce,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter:    true,
			Theme:         DefaultTheme,
			Colors:        make(map[string]string),
			ToastDuration: DefaultToastDuration,
		},
		Log: LogConfig{
			Path: "~/.config/notehub/notehub.log",
		},
	}
}

// Validate checks the configuration for errors, correcting out-of-range values.
func (c *Config) Validate() error {
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.List.PerPage <= 0 {
		c.List.PerPage = DefaultPerPage
	}
	if c.List.PerPage > MaxPerPage {
		c.List.PerPage = MaxPerPage
	}
	if c.List.SearchDebounce < 0 {
		c.List.SearchDebounce = DefaultSearchDebounce
	}
	if c.UI.ToastDuration <= 0 {
		c.UI.ToastDuration = DefaultToastDuration
	}
	if c.UI.Theme == "" {
		c.UI.Theme = DefaultTheme
	}
	switch c.UI.GlamourStyle {
	case "", "dark", "light", "notty", "auto":
	default:
		c.UI.GlamourStyle = ""
	}
	return nil
}
