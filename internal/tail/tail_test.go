package tail

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLastLines(t *testing.T) {
	path := writeTemp(t, "one\ntwo\nthree\nfour\nfive\n")

	lines, err := LastLines(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "four", "five"}, lines)
}

func TestLastLinesFewerThanRequested(t *testing.T) {
	path := writeTemp(t, "one\ntwo\n")

	lines, err := LastLines(path, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestLastLinesNoTrailingNewline(t *testing.T) {
	path := writeTemp(t, "one\ntwo\nthree")

	lines, err := LastLines(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, lines)
}

func TestLastLinesEmptyAndZero(t *testing.T) {
	path := writeTemp(t, "")

	lines, err := LastLines(path, 5)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = LastLines(path, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestLastLinesSpansBlocks(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&b, "line number %04d padding padding padding\n", i)
	}
	path := writeTemp(t, b.String())

	lines, err := LastLines(path, 2)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "line number 0998 padding padding padding", lines[0])
	assert.Equal(t, "line number 0999 padding padding padding", lines[1])
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFollowStreamsAppends(t *testing.T) {
	path := writeTemp(t, "before\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- Follow(ctx, path, &out) }()

	// Give the follower a moment to reach the end of the file, then append.
	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("after\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "after\n")
	}, 5*time.Second, 50*time.Millisecond)

	// Data written before Follow started is not replayed.
	assert.NotContains(t, out.String(), "before")

	cancel()
	require.NoError(t, <-done)
}

func TestFollowMissingFile(t *testing.T) {
	err := Follow(context.Background(), filepath.Join(t.TempDir(), "nope"), &bytes.Buffer{})
	assert.Error(t, err)
}
