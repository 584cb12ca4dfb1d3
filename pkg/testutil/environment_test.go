package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/paths"
)

func TestEnvironmentDiscovery(t *testing.T) {
	env := NewTestEnvironment(t)
	env.WriteManifest(ManifestTOML("Test Product"))

	assert.Equal(t, env.ManifestPath, os.Getenv(paths.EnvManifest))
	assert.Equal(t, env.InstallDir, os.Getenv(paths.EnvInstallDir))

	m, err := manifest.Load(env.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, "Test Product", m.Product.Name)
}

func TestEnvironmentSources(t *testing.T) {
	env := NewTestEnvironment(t)
	SeedFullManifestSources(env)

	for _, rel := range []string{
		"dist/app/WhisperTranscriber.exe",
		"vendor/ffmpeg/bin/ffmpeg.exe",
	} {
		_, err := os.Stat(env.WriteSourceFile(rel, []byte("x")))
		assert.NoError(t, err)
	}
}

func TestEnvironmentPathStore(t *testing.T) {
	env := NewTestEnvironment(t)

	assert.Equal(t, "", env.Path())
	env.SetPath(`C:\Windows`)
	assert.Equal(t, `C:\Windows`, env.Path())
}

func TestFullManifestValidates(t *testing.T) {
	env := NewTestEnvironment(t)
	env.WriteManifest(FullManifestTOML())

	m, err := manifest.Load(env.ManifestPath)
	require.NoError(t, err)
	assert.Len(t, m.Components, 2)
	assert.Len(t, m.Shortcuts, 1)
	assert.True(t, m.Registry.UninstallEntry)
}
