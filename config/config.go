package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rnakao/marktree/editor"
	"github.com/rnakao/marktree/watch"
)

const (
	configDir  = ".config/marktree"
	configFile = "config.json"

	defaultLogFile = ".local/state/marktree/marktree.log"
)

// Config holds application configuration.
type Config struct {
	Root     string        // vault root directory
	Markers  []string      // marker strings, matched case-insensitively
	Include  []string      // doublestar patterns selecting documents
	Editor   editor.Editor // editor for match navigation
	Debounce time.Duration // delay between last file change and rescan
	LogFile  string        // log destination, "" discards logs
	Debug    bool          // log at debug level
}

// DefaultMarkers are the markers scanned for when none are configured.
func DefaultMarkers() []string {
	return []string{"todo", "fixme", "should remember to"}
}

// Default returns the default configuration. The vault root is resolved
// separately since it depends on flags and the working directory.
func Default() *Config {
	return &Config{
		Markers:  DefaultMarkers(),
		Include:  []string{"**/*.md"},
		Debounce: watch.DefaultDebounce,
		LogFile:  ExpandPath("~/" + defaultLogFile),
	}
}

// fileConfig is the JSON-unmarshaling intermediary. Absent keys keep
// their defaults. Markers is a pointer so an explicit empty list, which
// disables scanning, is distinguishable from an absent key.
type fileConfig struct {
	Markers    *[]string `json:"markers"`
	Include    []string  `json:"include"`
	Editor     string    `json:"editor"`
	DebounceMs int       `json:"debounceMs"`
	LogFile    string    `json:"logFile"`
}

// Load loads configuration from the default location
// (~/.config/marktree/config.json). A missing file yields defaults.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path, or the default
// location when path is empty.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if raw.Markers != nil {
		cfg.Markers = NormalizeMarkers(*raw.Markers)
	}
	if len(raw.Include) > 0 {
		cfg.Include = raw.Include
	}
	if raw.Editor != "" {
		cfg.Editor = editor.Editor(raw.Editor)
	}
	if raw.DebounceMs > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMs) * time.Millisecond
	}
	if raw.LogFile != "" {
		cfg.LogFile = ExpandPath(raw.LogFile)
	}

	return cfg, nil
}

// ParseMarkers splits marker input into individual markers: one per
// line or comma-separated, trimmed, empty entries discarded. Case is
// preserved; matching lowercases both sides.
func ParseMarkers(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == ','
	})
	return NormalizeMarkers(fields)
}

// NormalizeMarkers trims each marker and drops empty ones. An empty
// result is valid and simply matches nothing.
func NormalizeMarkers(markers []string) []string {
	normalized := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		normalized = append(normalized, m)
	}
	return normalized
}

// ExpandPath expands ~ to the home directory.
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
