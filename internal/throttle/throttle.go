package throttle

import (
	"log"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cleverdata/saveguard/internal/fsys"
)

// DefaultInterval is how old the newest backup must be before a fresh
// numbered backup is forced.
const DefaultInterval = time.Hour

// Checker decides whether a file's "already backed up" flag should be
// cleared before a save. It keeps no state of its own: the newest backup's
// mtime is read from the filesystem on every call, so backups created or
// removed by other processes are always seen.
type Checker struct {
	fs  *fsys.FS
	now func() time.Time
}

func New(fs *fsys.FS) *Checker {
	return &Checker{fs: fs, now: time.Now}
}

// ShouldForceBackup reports whether the newest existing backup of path is
// at least interval old. No backup at all means false: the host's normal
// not-yet-backed-up handling covers that case. Probe errors also yield
// false; a throttling failure must never block a save.
func (c *Checker) ShouldForceBackup(path string, interval time.Duration) bool {
	if interval < 0 {
		interval = DefaultInterval
	}

	_, mtime, ok := c.NewestBackup(path)
	if !ok {
		return false
	}
	return c.now().Sub(mtime) >= interval
}

// NewestBackup locates the most recently modified backup sibling of path:
// either the simple form "name~" or a numbered "name.~N~". Returns false
// when no backup exists or the directory cannot be read.
func (c *Checker) NewestBackup(path string) (string, time.Time, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Printf("[throttle] cannot resolve %s: %v", path, err)
		return "", time.Time{}, false
	}

	dir := filepath.Dir(abs)
	base := filepath.Base(abs)

	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		log.Printf("[throttle] cannot scan %s: %v", dir, err)
		return "", time.Time{}, false
	}

	numbered := regexp.MustCompile("^" + regexp.QuoteMeta(base) + `\.~[0-9]+~$`)

	var (
		newest      string
		newestMtime time.Time
		found       bool
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name != base+"~" && !numbered.MatchString(name) {
			continue
		}
		if !found || e.ModTime().After(newestMtime) {
			newest = filepath.Join(dir, name)
			newestMtime = e.ModTime()
			found = true
		}
	}
	return newest, newestMtime, found
}
