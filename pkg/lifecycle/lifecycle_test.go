package lifecycle

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whispertools/wtsetup/pkg/appreg"
	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/receipt"
	"github.com/whispertools/wtsetup/pkg/shortcut"
)

// fakeHooks returns Hooks wired to a memory store and recording fakes.
func fakeHooks(store *envpath.MemoryStore) (*Hooks, *recorder) {
	rec := &recorder{}
	h := &Hooks{
		Maintainer: envpath.NewMaintainer(store),
		CreateShortcut: func(s shortcut.Shortcut) error {
			rec.created = append(rec.created, s.LinkPath)
			return nil
		},
		RemoveShortcut: func(link string) error {
			rec.removed = append(rec.removed, link)
			return nil
		},
		RegisterApp: func(e appreg.Entry) error {
			rec.registered = append(rec.registered, e.DisplayName)
			return nil
		},
		UnregisterApp: func(name string) error {
			rec.unregistered = append(rec.unregistered, name)
			return nil
		},
		Notify: func() error {
			rec.notified++
			return nil
		},
	}
	return h, rec
}

type recorder struct {
	created      []string
	removed      []string
	registered   []string
	unregistered []string
	notified     int
}

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Product: manifest.Product{
			Name:      "Whisper Transcriber",
			Version:   "1.4.0",
			Publisher: "Whisper Tools",
		},
		Components: []manifest.Component{
			{Name: "app", Source: "dist/app", Dest: "."},
			{Name: "ffmpeg", Source: "vendor/ffmpeg", AddToPath: []string{"bin"}},
		},
		Shortcuts: []manifest.Shortcut{
			{Name: "Whisper Transcriber", Target: "WhisperTranscriber.exe", Location: manifest.LocationStartMenu},
		},
		Path:     manifest.PathConfig{Scope: "machine"},
		Registry: manifest.RegistryConfig{UninstallEntry: true},
	}
}

func TestPostInstall(t *testing.T) {
	t.Setenv("ProgramData", t.TempDir())

	store := envpath.NewMemoryStore()
	require.NoError(t, store.WriteString(envpath.ValueName, `C:\Windows;C:\Windows\System32`))

	h, rec := fakeHooks(store)
	installDir := t.TempDir()
	r := &receipt.Receipt{Product: "Whisper Transcriber", InstallDir: installDir}

	require.NoError(t, h.PostInstall(testManifest(), installDir, r))

	ffmpegBin := filepath.Join(installDir, "ffmpeg", "bin")
	value, err := store.ReadString(envpath.ValueName)
	require.NoError(t, err)
	assert.Equal(t, `C:\Windows;C:\Windows\System32;`+ffmpegBin, value)

	assert.Equal(t, []string{ffmpegBin}, r.PathEntries)
	assert.Equal(t, "machine", r.PathScope)
	assert.Len(t, r.Shortcuts, 1)
	assert.Equal(t, rec.created, r.Shortcuts)
	assert.True(t, r.UninstallEntry)
	assert.Equal(t, []string{"Whisper Transcriber"}, rec.registered)
	assert.Equal(t, 1, rec.notified)
}

func TestPostInstallIdempotent(t *testing.T) {
	t.Setenv("ProgramData", t.TempDir())

	store := envpath.NewMemoryStore()
	h, _ := fakeHooks(store)
	installDir := t.TempDir()

	require.NoError(t, h.PostInstall(testManifest(), installDir, &receipt.Receipt{}))
	first, err := store.ReadString(envpath.ValueName)
	require.NoError(t, err)

	require.NoError(t, h.PostInstall(testManifest(), installDir, &receipt.Receipt{}))
	second, err := store.ReadString(envpath.ValueName)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPostInstallPartialFailureKeepsReceipt(t *testing.T) {
	t.Setenv("ProgramData", t.TempDir())

	store := envpath.NewMemoryStore()
	h, _ := fakeHooks(store)
	h.CreateShortcut = func(s shortcut.Shortcut) error {
		return errors.New(errors.ErrShortcutCreate, "COM said no")
	}

	installDir := t.TempDir()
	r := &receipt.Receipt{}

	err := h.PostInstall(testManifest(), installDir, r)
	assert.True(t, errors.IsErrorCode(err, errors.ErrShortcutCreate))

	// The PATH entry landed before the shortcut failed and must be on
	// the receipt so uninstall can revert it.
	assert.Equal(t, []string{filepath.Join(installDir, "ffmpeg", "bin")}, r.PathEntries)
	assert.Empty(t, r.Shortcuts)
	assert.False(t, r.UninstallEntry)
}

func TestPostInstallDryRun(t *testing.T) {
	t.Setenv("ProgramData", t.TempDir())

	store := envpath.NewMemoryStore()
	h, rec := fakeHooks(store)
	h.DryRun = true

	r := &receipt.Receipt{}
	require.NoError(t, h.PostInstall(testManifest(), t.TempDir(), r))

	_, err := store.ReadString(envpath.ValueName)
	assert.ErrorIs(t, err, envpath.ErrValueNotFound)
	assert.Empty(t, rec.created)
	assert.Empty(t, rec.registered)
	assert.Equal(t, 0, rec.notified)
	assert.Empty(t, r.PathEntries)
}

func TestPostInstallBroadcastFailureIsNotFatal(t *testing.T) {
	t.Setenv("ProgramData", t.TempDir())

	store := envpath.NewMemoryStore()
	h, _ := fakeHooks(store)
	h.Notify = func() error {
		return errors.New(errors.ErrInternal, "no desktop session")
	}

	installDir := t.TempDir()
	r := &receipt.Receipt{}

	// The broadcast only speeds up propagation; its failure must not
	// undo or fail an otherwise complete install.
	require.NoError(t, h.PostInstall(testManifest(), installDir, r))
	assert.Equal(t, []string{filepath.Join(installDir, "ffmpeg", "bin")}, r.PathEntries)
	assert.True(t, r.UninstallEntry)
}

func TestPostUninstall(t *testing.T) {
	store := envpath.NewMemoryStore()
	ffmpegBin := `C:\App\ffmpeg\bin`
	require.NoError(t, store.WriteString(envpath.ValueName, `C:\Windows;`+ffmpegBin+`;C:\Windows\System32`))

	h, rec := fakeHooks(store)
	r := &receipt.Receipt{
		Product:        "Whisper Transcriber",
		PathEntries:    []string{ffmpegBin},
		Shortcuts:      []string{`C:\ProgramData\Microsoft\Windows\Start Menu\Programs\Whisper Transcriber.lnk`},
		UninstallEntry: true,
	}

	require.NoError(t, h.PostUninstall(r))

	value, err := store.ReadString(envpath.ValueName)
	require.NoError(t, err)
	assert.Equal(t, `C:\Windows;C:\Windows\System32`, value)
	assert.Equal(t, r.Shortcuts, rec.removed)
	assert.Equal(t, []string{"Whisper Transcriber"}, rec.unregistered)
	assert.Equal(t, 1, rec.notified)
}

func TestPostUninstallContinuesPastFailures(t *testing.T) {
	store := envpath.NewMemoryStore()
	require.NoError(t, store.WriteString(envpath.ValueName, `C:\App\ffmpeg\bin`))

	h, rec := fakeHooks(store)
	h.RemoveShortcut = func(link string) error {
		return errors.New(errors.ErrFileAccess, "locked")
	}

	r := &receipt.Receipt{
		Product:        "Whisper Transcriber",
		PathEntries:    []string{`C:\App\ffmpeg\bin`},
		Shortcuts:      []string{`C:\x.lnk`},
		UninstallEntry: true,
	}

	err := h.PostUninstall(r)
	assert.Error(t, err)

	// The shortcut failure did not stop PATH cleanup or unregistration.
	value, readErr := store.ReadString(envpath.ValueName)
	require.NoError(t, readErr)
	assert.Equal(t, "", value)
	assert.Equal(t, []string{"Whisper Transcriber"}, rec.unregistered)
}

func TestPostUninstallAbsentEntriesAreNoOps(t *testing.T) {
	store := envpath.NewMemoryStore()
	h, _ := fakeHooks(store)

	r := &receipt.Receipt{
		Product:     "Whisper Transcriber",
		PathEntries: []string{`C:\App\ffmpeg\bin`},
	}

	assert.NoError(t, h.PostUninstall(r))
}
