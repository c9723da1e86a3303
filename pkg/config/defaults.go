package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/0xmhha/file-sorter/pkg/rules"
)

// defaultDumpFolder returns the default dump folder.
//
// Returns: ~/file-sorter/__DUPLICATES__.
func defaultDumpFolder() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "file-sorter", "__DUPLICATES__")
	}

	return filepath.Join(homeDir, "file-sorter", "__DUPLICATES__")
}

// defaultDBPath returns the default journal database path.
//
// Returns: ~/.config/file-sorter/journal.db.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./journal.db"
	}

	return filepath.Join(homeDir, ".config", "file-sorter", "journal.db")
}

// DefaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/file-sorter/config.yaml.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "file-sorter", "config.yaml")
}

func defaultIgnorePatterns() []string {
	return append([]string(nil), rules.DefaultIgnorePatterns...)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
