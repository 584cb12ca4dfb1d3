package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// fixtureTree lays out a minimal Whisper Transcriber payload.
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"dist/app/WhisperTranscriber.exe": "exe",
		"vendor/ffmpeg/bin/ffmpeg.exe":    "ffmpeg",
		"vendor/ffmpeg/bin/ffprobe.exe":   "ffprobe",
		"models/base.bin":                 "weights",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func fixtureManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Product: manifest.Product{Name: "Whisper Transcriber", Version: "1.4.0"},
		Components: []manifest.Component{
			{Name: "app", Source: "dist/app", Dest: "."},
			{Name: "ffmpeg", Source: "vendor/ffmpeg", AddToPath: []string{"bin"}},
			{Name: "models", Source: "models"},
		},
		Path: manifest.PathConfig{Scope: "machine"},
	}
}

func opTargets(p *Plan, typ OperationType) []string {
	var targets []string
	for _, op := range p.Operations {
		if op.Type == typ {
			targets = append(targets, op.Target)
		}
	}
	return targets
}

func TestInstallPlan(t *testing.T) {
	sourceRoot := fixtureTree(t)
	installDir := filepath.Join(t.TempDir(), "Whisper Transcriber")

	p, err := Install(fixtureManifest(), sourceRoot, installDir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		installDir,
		filepath.Join(installDir, "ffmpeg"),
		filepath.Join(installDir, "ffmpeg", "bin"),
		filepath.Join(installDir, "models"),
	}, opTargets(p, OperationCreateDir))

	assert.ElementsMatch(t, []string{
		filepath.Join(installDir, "WhisperTranscriber.exe"),
		filepath.Join(installDir, "ffmpeg", "bin", "ffmpeg.exe"),
		filepath.Join(installDir, "ffmpeg", "bin", "ffprobe.exe"),
		filepath.Join(installDir, "models", "base.bin"),
	}, opTargets(p, OperationCopyFile))

	assert.ElementsMatch(t, []string{
		"WhisperTranscriber.exe",
		filepath.Join("ffmpeg", "bin", "ffmpeg.exe"),
		filepath.Join("ffmpeg", "bin", "ffprobe.exe"),
		filepath.Join("models", "base.bin"),
	}, p.Files)

	assert.ElementsMatch(t, []string{
		"ffmpeg",
		filepath.Join("ffmpeg", "bin"),
		"models",
	}, p.Dirs)

	// Directories are created before any file lands in them.
	created := map[string]bool{}
	for _, op := range p.Operations {
		switch op.Type {
		case OperationCreateDir:
			created[op.Target] = true
		case OperationCopyFile:
			assert.True(t, created[filepath.Dir(op.Target)],
				"no create-dir before copy to %s", op.Target)
		}
	}
}

func TestInstallPlanMissingSource(t *testing.T) {
	m := fixtureManifest()
	m.Components = []manifest.Component{{Name: "app", Source: "does-not-exist"}}

	_, err := Install(m, t.TempDir(), filepath.Join(t.TempDir(), "out"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestInstallPlanSourceIsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "flat"), []byte("x"), 0644))

	m := fixtureManifest()
	m.Components = []manifest.Component{{Name: "app", Source: "flat"}}

	_, err := Install(m, root, filepath.Join(t.TempDir(), "out"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanInvalid))
}

func TestUninstallPlan(t *testing.T) {
	installDir := filepath.Join("/opt", "whisper")
	r := &receipt.Receipt{
		Product:    "Whisper Transcriber",
		InstallDir: installDir,
		Files: []string{
			"WhisperTranscriber.exe",
			filepath.Join("ffmpeg", "bin", "ffmpeg.exe"),
		},
		Dirs: []string{"ffmpeg", filepath.Join("ffmpeg", "bin")},
	}

	p := Uninstall(r)

	assert.Equal(t, []string{
		filepath.Join(installDir, "ffmpeg", "bin", "ffmpeg.exe"),
		filepath.Join(installDir, "WhisperTranscriber.exe"),
		receipt.Path(installDir),
	}, opTargets(p, OperationDeleteFile))

	assert.Equal(t, []string{
		filepath.Join(installDir, "ffmpeg", "bin"),
		filepath.Join(installDir, "ffmpeg"),
		installDir,
	}, opTargets(p, OperationDeleteDir))
}
