package scan

import (
	"os"
	"path/filepath"
)

// FindVaultRoot walks up from startPath looking for an Obsidian vault
// marker (.obsidian directory). Returns the vault root and true when
// found.
func FindVaultRoot(startPath string) (string, bool) {
	path := startPath
	for {
		marker := filepath.Join(path, ".obsidian")
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return path, true
		}

		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}
	return "", false
}

// CurrentVaultRoot finds the vault root from the working directory.
func CurrentVaultRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return FindVaultRoot(wd)
}
