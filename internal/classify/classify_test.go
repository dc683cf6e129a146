package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDetectScript(t *testing.T) {
	path := writeTemp(t, "run.sh", []byte("#!/bin/sh\necho hi\n"))

	kind, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, KindScript, kind)
	assert.True(t, IsScript(path))
}

func TestDetectText(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("plain old prose\nwith two lines\n"))

	kind, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, KindText, kind)
	assert.False(t, IsScript(path))
}

func TestDetectImage(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	path := writeTemp(t, "pic.png", png)

	kind, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, KindImage, kind)
}

func TestDetectArchive(t *testing.T) {
	zip := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}
	path := writeTemp(t, "bundle.zip", zip)

	kind, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, KindArchive, kind)
}

func TestDetectBinary(t *testing.T) {
	path := writeTemp(t, "blob.bin", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0x00})

	kind, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, KindBinary, kind)
}

func TestDetectEmpty(t *testing.T) {
	path := writeTemp(t, "empty", nil)

	kind, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, KindEmpty, kind)
}

func TestDetectMissingFile(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	assert.False(t, IsScript(filepath.Join(t.TempDir(), "nope")))
}
