package appreg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSizeKB(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 1024), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 100), 0644))

	size, err := DirSizeKB(dir)
	require.NoError(t, err)
	// 1024 + 100 bytes rounds up to 2 KB.
	assert.Equal(t, uint32(2), size)
}

func TestDirSizeKBEmpty(t *testing.T) {
	size, err := DirSizeKB(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), size)
}

func TestNewEntry(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "WhisperTranscriber.exe")
	e := NewEntry("Whisper Transcriber", "1.4.0", "Whisper Tools", dir, icon)

	assert.Equal(t, "Whisper Transcriber", e.DisplayName)
	assert.Equal(t, "1.4.0", e.DisplayVersion)
	assert.Equal(t, dir, e.InstallLocation)
	assert.Contains(t, e.UninstallString, "uninstall --install-dir")
	assert.Contains(t, e.UninstallString, dir)
	assert.Equal(t, icon+",0", e.DisplayIcon)
	assert.Len(t, e.InstallDate, 8)
}
