package fsys

import (
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWritable(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := NewWith(mem, "testhost")

	require.NoError(t, mem.MkdirAll("/open", 0o755))
	require.NoError(t, mem.MkdirAll("/closed", 0o755))
	require.NoError(t, mem.Chmod("/closed", 0o555))

	assert.True(t, fs.IsWritable("/open"))
	assert.False(t, fs.IsWritable("/closed"))

	// Missing path falls through to its parent.
	assert.True(t, fs.IsWritable("/open/new-subdir"))
	assert.False(t, fs.IsWritable("/closed/new-subdir"))
	assert.False(t, fs.IsWritable("/no/such/place"))
}

func TestEnsureDirIdempotent(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := NewWith(mem, "testhost")

	require.NoError(t, fs.EnsureDir("/a/b/c"))
	require.NoError(t, fs.EnsureDir("/a/b/c"))

	info, err := fs.Stat("/a/b/c")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirConcurrentRace(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := NewWith(mem, "testhost")

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fs.EnsureDir("/shared/fallback/root")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
}

func TestHostnameNeverEmpty(t *testing.T) {
	fs := NewWith(afero.NewMemMapFs(), "")
	assert.Equal(t, "localhost", fs.Hostname())

	assert.NotEmpty(t, New().Hostname())
}
