package config

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/rnakao/marktree/editor"
	"github.com/rnakao/marktree/scan"
)

// ParseFlags loads the config file and applies command line overrides.
func ParseFlags() (*Config, error) {
	configFlag := flag.String("config", "", "Path to config file")
	rootFlag := flag.String("root", "", "Vault root directory (default: enclosing Obsidian vault or cwd)")
	markersFlag := flag.String("markers", "", "Marker strings, comma-separated")
	editorFlag := flag.String("editor", "", "Editor to use (cursor or code)")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := LoadFrom(*configFlag)
	if err != nil {
		return nil, err
	}
	cfg.Debug = *debugFlag

	if *markersFlag != "" {
		cfg.Markers = ParseMarkers(*markersFlag)
	}

	// Determine editor
	if *editorFlag != "" {
		cfg.Editor = editor.Editor(*editorFlag)
	} else if envEditor := getEnvEditor(); envEditor != "" {
		cfg.Editor = editor.Editor(envEditor)
	} else if cfg.Editor == "" {
		// Auto-detect
		ed, err := editor.DetectEditor()
		if err != nil {
			return nil, err
		}
		cfg.Editor = ed
	}

	// Determine vault root
	if *rootFlag != "" {
		cfg.Root = *rootFlag
	} else if cfg.Root == "" {
		if root, ok := scan.CurrentVaultRoot(); ok {
			cfg.Root = root
		} else if wd, err := os.Getwd(); err == nil {
			cfg.Root = wd
		} else {
			cfg.Root = "."
		}
	}
	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}

	return cfg, nil
}

// getEnvEditor gets the editor from the MARKTREE_EDITOR environment
// variable.
func getEnvEditor() string {
	return os.Getenv("MARKTREE_EDITOR")
}
