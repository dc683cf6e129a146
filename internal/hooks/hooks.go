package hooks

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/cleverdata/saveguard/internal/classify"
	"github.com/cleverdata/saveguard/internal/fsys"
	"github.com/cleverdata/saveguard/internal/journal"
	"github.com/cleverdata/saveguard/internal/relocate"
	"github.com/cleverdata/saveguard/internal/throttle"
)

// Hooks is the surface a host's save machinery calls into. Each method is
// an explicit post-processing or gating step around something the host
// already does; none of them replace host behavior, they only adjust its
// inputs (destination paths) or outputs (the backed-up flag).
type Hooks struct {
	fs       *fsys.FS
	resolver *relocate.Resolver
	checker  *throttle.Checker
	journal  *journal.Journal // nil disables event recording
	interval time.Duration
}

func New(fs *fsys.FS, resolver *relocate.Resolver, checker *throttle.Checker, jn *journal.Journal, interval time.Duration) *Hooks {
	return &Hooks{
		fs:       fs,
		resolver: resolver,
		checker:  checker,
		journal:  jn,
		interval: interval,
	}
}

// PreSave runs before the host writes a buffer out. A true result means the
// newest backup has gone stale and the host should clear its "already
// backed up" flag so the save produces a fresh numbered backup.
func (h *Hooks) PreSave(path string) bool {
	force := h.checker.ShouldForceBackup(path, h.interval)
	if force {
		h.record(path, journal.EventBackupForced, "")
	}
	return force
}

// BackupTarget post-processes the host-computed backup destination,
// relocating it when its directory is not writable.
func (h *Hooks) BackupTarget(defaultPath string) (string, error) {
	resolved, err := h.resolver.ResolveBackupPath(defaultPath)
	if err != nil {
		return "", err
	}
	if relocated(defaultPath, resolved) {
		h.record(defaultPath, journal.EventBackupRelocated, resolved)
	}
	return resolved, nil
}

// AutosaveTarget post-processes the host-computed autosave filename,
// flattening and relocating it when its directory is not writable.
func (h *Hooks) AutosaveTarget(defaultPath string) (string, error) {
	resolved, err := h.resolver.EncodeAutosavePath(defaultPath)
	if err != nil {
		return "", err
	}
	if relocated(defaultPath, resolved) {
		h.record(defaultPath, journal.EventAutosaveRelocated, resolved)
	}
	return resolved, nil
}

// PostSave propagates the executable bit onto freshly saved scripts: a file
// that starts with a shebang gains execute permission wherever it is
// already readable. Non-scripts are left alone.
func (h *Hooks) PostSave(path string) error {
	if !classify.IsScript(path) {
		return nil
	}

	info, err := h.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}

	mode := info.Mode()
	if mode.Perm()&0o111 != 0 {
		return nil
	}

	execBits := (mode.Perm() & 0o444) >> 2
	if err := h.fs.Chmod(path, mode|execBits); err != nil {
		return fmt.Errorf("cannot mark %s executable: %w", path, err)
	}
	return nil
}

// OnKill writes an autosave snapshot for a modified buffer whose host is
// going away, using the same (possibly relocated) autosave destination the
// periodic autosave would use. Unmodified buffers are skipped. Returns the
// path written, or "" when nothing was.
func (h *Hooks) OnKill(path string, modified bool, snapshot []byte) (string, error) {
	if !modified {
		return "", nil
	}

	target, err := h.AutosaveTarget(relocate.DefaultAutosavePath(path))
	if err != nil {
		return "", err
	}
	if err := h.fs.WriteFile(target, snapshot, 0o600); err != nil {
		return "", fmt.Errorf("cannot write autosave %s: %w", target, err)
	}
	h.record(path, journal.EventAutosaveOnKill, target)
	return target, nil
}

func (h *Hooks) record(path, event, detail string) {
	if h.journal == nil {
		return
	}
	h.journal.Record(path, event, detail)
}

func relocated(defaultPath, resolved string) bool {
	abs, err := filepath.Abs(defaultPath)
	if err != nil {
		log.Printf("[hooks] cannot resolve %s: %v", defaultPath, err)
		return false
	}
	return abs != resolved
}
