// Package testutil orchestrates installer test environments: a
// payload source tree, a manifest, an install root, and an in-memory
// PATH store, all isolated under t.TempDir.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/paths"
)

// TestEnvironment provides a complete installer test environment.
type TestEnvironment struct {
	// SourceRoot holds the payload tree and the manifest file.
	SourceRoot string

	// InstallDir is an empty directory to install into.
	InstallDir string

	// ManifestPath is SourceRoot/wtsetup.toml once WriteManifest ran.
	ManifestPath string

	// Store is the in-memory PATH store the environment wires up.
	Store *envpath.MemoryStore

	t *testing.T
}

// NewTestEnvironment creates an isolated environment and points the
// discovery environment variables at it.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		SourceRoot: t.TempDir(),
		InstallDir: t.TempDir(),
		Store:      envpath.NewMemoryStore(),
		t:          t,
	}
	env.ManifestPath = filepath.Join(env.SourceRoot, paths.ManifestFileName)

	t.Setenv(paths.EnvManifest, env.ManifestPath)
	t.Setenv(paths.EnvInstallDir, env.InstallDir)

	return env
}

// WriteManifest writes manifest TOML into the source root.
func (env *TestEnvironment) WriteManifest(toml string) {
	env.t.Helper()
	if err := os.WriteFile(env.ManifestPath, []byte(toml), 0644); err != nil {
		env.t.Fatalf("failed to write manifest: %v", err)
	}
}

// WriteSourceFile creates a payload file under the source root,
// creating parent directories as needed.
func (env *TestEnvironment) WriteSourceFile(rel string, content []byte) string {
	env.t.Helper()
	path := filepath.Join(env.SourceRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		env.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// SetPath seeds the PATH value in the memory store.
func (env *TestEnvironment) SetPath(value string) {
	env.t.Helper()
	if err := env.Store.WriteString(envpath.ValueName, value); err != nil {
		env.t.Fatalf("failed to seed PATH: %v", err)
	}
}

// Path reads the current PATH value from the memory store; an absent
// value reads as "".
func (env *TestEnvironment) Path() string {
	env.t.Helper()
	value, err := env.Store.ReadString(envpath.ValueName)
	if err != nil {
		return ""
	}
	return value
}

// InstalledFile returns the absolute path of a staged file.
func (env *TestEnvironment) InstalledFile(rel string) string {
	return filepath.Join(env.InstallDir, filepath.FromSlash(rel))
}

// AssertFileExists fails the test when a staged file is missing.
func (env *TestEnvironment) AssertFileExists(rel string) {
	env.t.Helper()
	if _, err := os.Stat(env.InstalledFile(rel)); err != nil {
		env.t.Errorf("expected %s to exist: %v", rel, err)
	}
}

// AssertFileMissing fails the test when a file survived removal.
func (env *TestEnvironment) AssertFileMissing(rel string) {
	env.t.Helper()
	if _, err := os.Stat(env.InstalledFile(rel)); !os.IsNotExist(err) {
		env.t.Errorf("expected %s to be gone, stat returned %v", rel, err)
	}
}
