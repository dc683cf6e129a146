package throttle

import (
	"testing"
	"time"

	"github.com/cleverdata/saveguard/internal/fsys"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T) (*Checker, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/w", 0o755))
	return New(fsys.NewWith(mem, "testhost")), mem
}

func touch(t *testing.T, mem afero.Fs, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(mem, path, []byte("x"), 0o644))
	require.NoError(t, mem.Chtimes(path, mtime, mtime))
}

func TestShouldForceBackupNoBackup(t *testing.T) {
	c, mem := newTestChecker(t)
	touch(t, mem, "/w/f.txt", time.Now())

	assert.False(t, c.ShouldForceBackup("/w/f.txt", time.Hour))
}

func TestShouldForceBackupStale(t *testing.T) {
	c, mem := newTestChecker(t)
	now := time.Now()
	touch(t, mem, "/w/f.txt", now)
	touch(t, mem, "/w/f.txt.~1~", now.Add(-4000*time.Second))

	assert.True(t, c.ShouldForceBackup("/w/f.txt", 3600*time.Second))
}

func TestShouldForceBackupFresh(t *testing.T) {
	c, mem := newTestChecker(t)
	now := time.Now()
	touch(t, mem, "/w/f.txt", now)
	touch(t, mem, "/w/f.txt.~1~", now.Add(-30*time.Minute))

	assert.False(t, c.ShouldForceBackup("/w/f.txt", time.Hour))
}

func TestShouldForceBackupUsesNewest(t *testing.T) {
	c, mem := newTestChecker(t)
	now := time.Now()
	touch(t, mem, "/w/f.txt", now)
	touch(t, mem, "/w/f.txt.~1~", now.Add(-2*time.Hour))
	touch(t, mem, "/w/f.txt.~2~", now.Add(-10*time.Minute))

	// The newest backup is fresh, so nothing is forced even though an
	// older one is stale.
	assert.False(t, c.ShouldForceBackup("/w/f.txt", time.Hour))

	newest, mtime, ok := c.NewestBackup("/w/f.txt")
	require.True(t, ok)
	assert.Equal(t, "/w/f.txt.~2~", newest)
	assert.WithinDuration(t, now.Add(-10*time.Minute), mtime, time.Second)
}

func TestNewestBackupSimpleForm(t *testing.T) {
	c, mem := newTestChecker(t)
	now := time.Now()
	touch(t, mem, "/w/f.txt", now)
	touch(t, mem, "/w/f.txt~", now.Add(-2*time.Hour))

	newest, _, ok := c.NewestBackup("/w/f.txt")
	require.True(t, ok)
	assert.Equal(t, "/w/f.txt~", newest)
	assert.True(t, c.ShouldForceBackup("/w/f.txt", time.Hour))
}

func TestNewestBackupIgnoresOtherSiblings(t *testing.T) {
	c, mem := newTestChecker(t)
	now := time.Now()
	touch(t, mem, "/w/f.txt", now)
	touch(t, mem, "/w/f.txt.bak", now.Add(-2*time.Hour))
	touch(t, mem, "/w/f.txt.~x~", now.Add(-2*time.Hour))
	touch(t, mem, "/w/other.txt.~1~", now.Add(-2*time.Hour))

	_, _, ok := c.NewestBackup("/w/f.txt")
	assert.False(t, ok)
}

func TestShouldForceBackupFailsOpen(t *testing.T) {
	c, _ := newTestChecker(t)

	// Directory does not exist at all: probe error, never propagated.
	assert.False(t, c.ShouldForceBackup("/missing/f.txt", time.Hour))
}

func TestShouldForceBackupBoundary(t *testing.T) {
	c, mem := newTestChecker(t)
	now := time.Now()
	touch(t, mem, "/w/f.txt", now)

	// Exactly at the interval: elapsed >= interval forces a backup.
	touch(t, mem, "/w/f.txt.~1~", now.Add(-time.Hour))
	assert.True(t, c.ShouldForceBackup("/w/f.txt", time.Hour))
}
