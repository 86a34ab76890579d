package store

import (
	"os"
	"path/filepath"
	"strings"
)

const sqliteFileName = "dashboard.sqlite"

// Store is a profile directory holding the persisted dashboard layout.
type Store struct {
	Dir string
}

// ProfileDir returns ~/.dashboard/profiles/<name>.
func ProfileDir(name string) (string, error) {
	name, err := NormalizeProfileName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

// Resolve picks the store directory.
//
// Priority:
// 1) explicit dir
// 2) explicit profile
// 3) currentProfile from the global config
// 4) the "default" profile
//
// It returns the directory and the profile name ("" when dir was explicit).
func Resolve(dir, profile string) (string, string, error) {
	if d := strings.TrimSpace(dir); d != "" {
		return filepath.Clean(d), "", nil
	}
	name := strings.TrimSpace(profile)
	if name == "" {
		if cfg, err := LoadConfig(); err == nil && strings.TrimSpace(cfg.CurrentProfile) != "" {
			name = strings.TrimSpace(cfg.CurrentProfile)
		} else {
			name = DefaultProfile
		}
	}
	d, err := ProfileDir(name)
	if err != nil {
		return "", "", err
	}
	return d, name, nil
}
