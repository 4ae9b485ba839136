package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/api"
	"github.com/marcus/notehub/internal/app"
	"github.com/marcus/notehub/internal/config"
	"github.com/marcus/notehub/internal/keymap"
	"github.com/marcus/notehub/internal/state"
	"github.com/marcus/notehub/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	baseURL      = flag.String("base-url", "", "notes API base URL (overrides config)")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	writeConfig  = flag.Bool("write-config", false, "write the effective config to the config path and exit")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("notehub version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}

	if *writeConfig {
		if err := saveConfig(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", configTarget(*configPath))
		os.Exit(0)
	}

	// The UI owns the terminal, so logs go to a file.
	logOut, closeLog := openLog(cfg.Log.Path)
	defer closeLog()
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Persistent state is optional
	if err := state.Init(); err != nil {
		slog.Warn("load state", "err", err)
	}

	styles.ApplyThemeWithOverrides(cfg.UI.Theme, cfg.UI.Colors)

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithBearerToken(cfg.API.Token),
		api.WithUserAgent("notehub/"+effectiveVersion(Version)),
	)
	slog.Info("starting",
		"base_url", client.BaseURL(),
		"per_page", cfg.List.PerPage,
		"theme", styles.GetCurrentThemeName(),
	)

	p := tea.NewProgram(app.New(cfg, client, km), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func saveConfig(path string, cfg *config.Config) error {
	if path != "" {
		return config.SaveTo(path, cfg)
	}
	return config.Save(cfg)
}

func configTarget(path string) string {
	if path != "" {
		return path
	}
	return config.ConfigPath()
}

// openLog opens the log file for appending. Logging is discarded when the
// file cannot be opened.
func openLog(path string) (io.Writer, func()) {
	path = config.ExpandPath(path)
	if path == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + shortRevision(revision)
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notehub [options]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal client for a notes API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s, %s, %s override the config file.\n",
			config.EnvBaseURL, config.EnvToken, config.EnvPerPage)
	}
}
