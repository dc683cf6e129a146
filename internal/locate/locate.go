package locate

import (
	"path/filepath"

	"github.com/cleverdata/saveguard/internal/fsys"
)

// Find returns the first regular file called name in the ordered directory
// list, the way a load path is searched. Missing or unreadable directories
// are skipped.
func Find(fs *fsys.FS, name string, dirs []string) (string, bool) {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		info, err := fs.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		return abs, true
	}
	return "", false
}
