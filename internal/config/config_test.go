package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBackupInterval, s.BackupIntervalSec)
	assert.Equal(t, time.Hour, s.BackupInterval())
	require.Len(t, s.Fallbacks, 1)
	assert.Equal(t, DefaultFallback(), s.Fallbacks[0])
	assert.NotEmpty(t, s.JournalPath)
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("backup_interval", 7200)
	viper.Set("fallbacks", []map[string]string{
		{"pattern": "/etc/", "root": "/var/backups/{host}"},
		{"pattern": ".*", "root": "~/.config/saveguard/fallback/{host}"},
	})
	viper.Set("journal_path", "/tmp/saveguard-test/journal.db")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, s.BackupInterval())
	require.Len(t, s.Fallbacks, 2)
	assert.Equal(t, "/etc/", s.Fallbacks[0].Pattern)
	assert.Equal(t, "/var/backups/{host}", s.Fallbacks[0].Root)
	assert.Equal(t, "/tmp/saveguard-test/journal.db", s.JournalPath)
}

func TestValidate(t *testing.T) {
	bad := Settings{BackupIntervalSec: -1}
	assert.Error(t, bad.Validate())

	incomplete := Settings{
		BackupIntervalSec: 10,
		Fallbacks:         []FallbackEntry{{Pattern: "", Root: "/x"}},
	}
	assert.Error(t, incomplete.Validate())

	ok := Settings{
		BackupIntervalSec: 10,
		Fallbacks:         []FallbackEntry{DefaultFallback()},
	}
	assert.NoError(t, ok.Validate())
}
