package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultBackupInterval is the minimum age of the newest backup before a
// fresh numbered backup is forced on the next save.
const DefaultBackupInterval = 3600

// FallbackEntry maps a directory pattern (anchored regexp) to the root
// directory that receives relocated backups and autosaves. The root may
// contain a {host} placeholder.
type FallbackEntry struct {
	Pattern string `mapstructure:"pattern"`
	Root    string `mapstructure:"root"`
}

type Settings struct {
	BackupIntervalSec int             `mapstructure:"backup_interval"`
	Fallbacks         []FallbackEntry `mapstructure:"fallbacks"`
	JournalPath       string          `mapstructure:"journal_path"`
}

// Load unmarshals the viper-backed configuration and fills in defaults for
// anything the file does not set. The result is treated as read-only by all
// callers; replacing the whole value is the only supported reconfiguration.
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if s.BackupIntervalSec == 0 {
		s.BackupIntervalSec = DefaultBackupInterval
	}
	if len(s.Fallbacks) == 0 {
		s.Fallbacks = []FallbackEntry{DefaultFallback()}
	}
	if s.JournalPath == "" {
		s.JournalPath = DefaultJournalPath()
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.BackupIntervalSec < 0 {
		return fmt.Errorf("backup_interval must not be negative (got %d)", s.BackupIntervalSec)
	}
	for _, f := range s.Fallbacks {
		if f.Pattern == "" || f.Root == "" {
			return fmt.Errorf("fallback entries need both a pattern and a root")
		}
	}
	return nil
}

func (s Settings) BackupInterval() time.Duration {
	return time.Duration(s.BackupIntervalSec) * time.Second
}

// DefaultFallback is the mandatory catch-all entry used when no config file
// exists yet: everything relocates under a host-namespaced directory in the
// user's config tree.
func DefaultFallback() FallbackEntry {
	return FallbackEntry{
		Pattern: ".*",
		Root:    "~/.config/saveguard/fallback/{host}",
	}
}

func DefaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "saveguard", "journal.db")
	}
	return filepath.Join(home, ".local", "state", "saveguard", "journal.db")
}
