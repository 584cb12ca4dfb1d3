package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whispertools/wtsetup/pkg/paths"
	"github.com/whispertools/wtsetup/pkg/testutil"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestRootCommandStructure(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"install", "uninstall", "status", "validate", "init", "export", "path", "version", "completion", "help"}
	var names []string
	for _, c := range root.Commands() {
		if !c.Hidden {
			names = append(names, c.Name())
		}
	}
	for _, name := range expected {
		assert.Contains(t, names, name)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("dry-run"))
	assert.NotNil(t, root.PersistentFlags().Lookup("manifest"))
}

func TestRootWithoutSubcommandFails(t *testing.T) {
	err := runCommand(t)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteManifest(testutil.FullManifestTOML())
	testutil.SeedFullManifestSources(env)

	assert.NoError(t, runCommand(t, "validate"))
}

func TestValidateCommandBadManifest(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteManifest("[product]\n")

	assert.Error(t, runCommand(t, "validate"))
}

func TestValidateCommandManifestFlag(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteManifest(testutil.ManifestTOML("Flagged"))
	testutil.SeedFullManifestSources(env)
	// The flag must win even when discovery would find nothing.
	t.Setenv(paths.EnvManifest, "")

	assert.NoError(t, runCommand(t, "validate", "--manifest", env.ManifestPath))
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runCommand(t, "init", dir))

	data, err := os.ReadFile(filepath.Join(dir, paths.ManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[product]")

	assert.Error(t, runCommand(t, "init", dir))
	assert.NoError(t, runCommand(t, "init", "--force", dir))
}

func TestExportWixCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteManifest(testutil.FullManifestTOML())
	testutil.SeedFullManifestSources(env)

	out := filepath.Join(t.TempDir(), "product.wxs")
	require.NoError(t, runCommand(t, "export", "wix", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Wix")
	assert.Contains(t, string(data), "Whisper Transcriber")
}

func TestPathCommandRejectsBadScope(t *testing.T) {
	err := runCommand(t, "path", "add", `C:\Tools`, "--scope", "galactic")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	assert.NoError(t, runCommand(t, "version"))
}

func TestCompletionCommand(t *testing.T) {
	assert.NoError(t, runCommand(t, "completion", "bash"))
	assert.Error(t, runCommand(t, "completion", "tcsh"))
}

func TestHelpTopics(t *testing.T) {
	root := NewRootCmd()

	var helpCmd bool
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			helpCmd = true
		}
	}
	assert.True(t, helpCmd, "topics help command should be installed")
}
