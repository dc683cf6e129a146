package fsys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS is a thin facade over the filesystem used by the policy packages.
// Backing it with afero lets tests run the exact same code against an
// in-memory filesystem where permission bits can be set freely.
type FS struct {
	af   afero.Fs
	host string
}

// New returns an FS backed by the real OS filesystem.
func New() *FS {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return &FS{af: afero.NewOsFs(), host: host}
}

// NewWith returns an FS over an arbitrary afero filesystem with a fixed
// host identity. Intended for tests.
func NewWith(af afero.Fs, host string) *FS {
	if host == "" {
		host = "localhost"
	}
	return &FS{af: af, host: host}
}

// Hostname is the machine identity interpolated into fallback-root templates.
func (f *FS) Hostname() string { return f.host }

func (f *FS) Stat(path string) (os.FileInfo, error) {
	return f.af.Stat(path)
}

func (f *FS) ReadDir(dir string) ([]os.FileInfo, error) {
	return afero.ReadDir(f.af, dir)
}

// IsWritable reports whether the current user may create files at path.
// If path does not exist the check falls through to its parent directory,
// so probing a not-yet-created file location behaves sensibly.
func (f *FS) IsWritable(path string) bool {
	info, err := f.af.Stat(path)
	if err == nil {
		return info.Mode().Perm()&0o200 != 0
	}
	if os.IsNotExist(err) {
		dir := filepath.Dir(path)
		if dir == path {
			return false
		}
		dirInfo, err := f.af.Stat(dir)
		if err != nil {
			return false
		}
		return dirInfo.IsDir() && dirInfo.Mode().Perm()&0o200 != 0
	}
	return false
}

// EnsureDir creates dir and any missing parents. An already-existing
// directory is success, which also makes concurrent creation of the same
// fallback root by independent callers benign.
func (f *FS) EnsureDir(dir string) error {
	if err := f.af.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func (f *FS) Chmod(path string, mode os.FileMode) error {
	return f.af.Chmod(path, mode)
}

func (f *FS) WriteFile(path string, data []byte, mode os.FileMode) error {
	return afero.WriteFile(f.af, path, data, mode)
}
