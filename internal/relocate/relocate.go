package relocate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cleverdata/saveguard/internal/config"
	"github.com/cleverdata/saveguard/internal/fsys"
)

const (
	// Sentinel replaces path separators when a directory is flattened into
	// a single filename component.
	Sentinel = "!"

	// AutosaveMarker is the character the host prefixes (and suffixes)
	// autosave filenames with.
	AutosaveMarker = "#"

	hostPlaceholder = "{host}"
)

type entry struct {
	rx   *regexp.Regexp
	root string
}

// Policy is the ordered pattern -> fallback-root mapping consulted when a
// canonical backup or autosave location is not writable. It is immutable
// after construction; the first matching entry wins.
type Policy struct {
	entries []entry
}

// NewPolicy compiles the configured fallback entries. The table must end in
// a catch-all so that every path matches exactly one entry.
func NewPolicy(entries []config.FallbackEntry) (*Policy, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("fallback policy is empty")
	}
	p := &Policy{}
	for _, e := range entries {
		rx, err := regexp.Compile("^(?:" + e.Pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid fallback pattern %q: %w", e.Pattern, err)
		}
		p.entries = append(p.entries, entry{rx: rx, root: e.Root})
	}

	last := p.entries[len(p.entries)-1]
	if !last.rx.MatchString("/") {
		return nil, fmt.Errorf("fallback policy must end in a catch-all entry (pattern %q does not match every path)", entries[len(entries)-1].Pattern)
	}
	return p, nil
}

// rootFor returns the interpolated fallback root for path. The catch-all
// guarantees a match.
func (p *Policy) rootFor(path, host string) (string, error) {
	for _, e := range p.entries {
		if e.rx.MatchString(path) {
			return expandRoot(e.root, host)
		}
	}
	return "", fmt.Errorf("no fallback entry matches %s", path)
}

func expandRoot(root, host string) (string, error) {
	root = strings.ReplaceAll(root, hostPlaceholder, host)
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand %s: %w", root, err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("cannot resolve fallback root %s: %w", root, err)
	}
	return abs, nil
}

// Resolver applies the fallback policy to backup and autosave destinations.
type Resolver struct {
	fs     *fsys.FS
	policy *Policy
}

func New(fs *fsys.FS, policy *Policy) *Resolver {
	return &Resolver{fs: fs, policy: policy}
}

// ResolveBackupPath returns where a backup file should actually be written.
// A writable canonical directory keeps the path as-is; otherwise the file
// name is relocated into the matching fallback root, which is created on
// demand.
func (r *Resolver) ResolveBackupPath(original string) (string, error) {
	abs, err := filepath.Abs(original)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", original, err)
	}

	dir := filepath.Dir(abs)
	if r.fs.IsWritable(dir) {
		return abs, nil
	}

	root, err := r.fallbackRoot(abs)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.Base(abs)), nil
}

// EncodeAutosavePath returns where an autosave file should actually be
// written. When the canonical directory is unwritable the directory portion
// is flattened into the filename: every separator becomes Sentinel, the
// host-applied leading marker is stripped off the filename, and the marker
// is re-applied at the front of the whole flattened segment.
//
// A directory that already contains the sentinel character is not escaped,
// so two different originals can in principle collide. This matches the
// behavior hosts already rely on; see DESIGN.md.
func (r *Resolver) EncodeAutosavePath(defaultPath string) (string, error) {
	abs, err := filepath.Abs(defaultPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", defaultPath, err)
	}

	dir, name := filepath.Split(abs)
	if r.fs.IsWritable(filepath.Dir(abs)) {
		return abs, nil
	}

	root, err := r.fallbackRoot(abs)
	if err != nil {
		return "", err
	}

	flatDir := strings.ReplaceAll(dir, string(filepath.Separator), Sentinel)
	bareName := strings.TrimPrefix(name, AutosaveMarker)
	return filepath.Join(root, AutosaveMarker+flatDir+bareName), nil
}

func (r *Resolver) fallbackRoot(path string) (string, error) {
	root, err := r.policy.rootFor(path, r.fs.Hostname())
	if err != nil {
		return "", err
	}
	if err := r.fs.EnsureDir(root); err != nil {
		return "", err
	}
	if !r.fs.IsWritable(root) {
		return "", fmt.Errorf("fallback root %s is not writable", root)
	}
	return root, nil
}

// DefaultAutosavePath is the host convention for an autosave filename:
// the bare name wrapped in markers, next to the original file.
func DefaultAutosavePath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, AutosaveMarker+name+AutosaveMarker)
}
