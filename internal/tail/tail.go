package tail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	blockSize = 4096

	// pollInterval backs up fsnotify the same way the watcher's polling
	// scan does: events can be dropped or unsupported on some filesystems.
	pollInterval = time.Second
)

// LastLines reads the final n lines of path without loading the whole file,
// scanning backwards in fixed-size blocks. A trailing newline does not count
// as an extra empty line.
func LastLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	var (
		tail     []byte
		offset   = size
		newlines int
	)
	for offset > 0 && newlines <= n {
		readSize := int64(blockSize)
		if offset < readSize {
			readSize = offset
		}
		offset -= readSize

		block := make([]byte, readSize)
		if _, err := f.ReadAt(block, offset); err != nil {
			return nil, err
		}
		tail = append(block, tail...)
		newlines = bytes.Count(tail, []byte{'\n'})
	}

	lines := splitLines(tail)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func splitLines(data []byte) []string {
	data = bytes.TrimSuffix(data, []byte{'\n'})
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{'\n'})
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(p)
	}
	return lines
}

// Follow streams bytes appended to path into w until ctx is canceled.
// The file is opened read-only and its directory is watched so rewrites
// are noticed; a poll ticker covers filesystems where fsnotify is
// unreliable. Truncation (size shrinking below the read offset) restarts
// the stream from the beginning of the file.
func Follow(ctx context.Context, path string, w io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	f, err := os.Open(abs)
	if err != nil {
		return err
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	drain := func() error {
		info, err := f.Stat()
		if err != nil {
			return err
		}
		if info.Size() < offset {
			// Truncated or rewritten in place. Start over.
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return err
			}
			offset = 0
		}
		n, err := io.Copy(w, f)
		offset += n
		return err
	}

	for {
		select {
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if e.Name != abs || e.Op&fsnotify.Write == 0 {
				continue
			}
			if err := drain(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[tail] watcher error: %v", err)
		case <-ticker.C:
			if err := drain(); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
