// Package commands implements the wtsetup operations behind the CLI:
// install, uninstall, status, validation, PATH maintenance, and WiX
// export. Each operation takes an Options struct and returns a Result,
// keeping the cobra layer thin and the operations testable.
package commands

import (
	"time"

	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/executor"
	"github.com/whispertools/wtsetup/pkg/internal/hashutil"
	"github.com/whispertools/wtsetup/pkg/lifecycle"
	"github.com/whispertools/wtsetup/pkg/logging"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/paths"
	"github.com/whispertools/wtsetup/pkg/plan"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// InstallOptions configures an install run.
type InstallOptions struct {
	// ManifestPath names the manifest; empty triggers discovery.
	ManifestPath string

	// InstallDir overrides the resolved install root.
	InstallDir string

	// SourceDir overrides the source root component sources resolve
	// against; empty uses the manifest's directory.
	SourceDir string

	// Store is the PATH store to maintain. Nil selects the system
	// store for the manifest's scope.
	Store envpath.Store

	// Hooks overrides the lifecycle integrations, for tests.
	Hooks *lifecycle.Hooks

	DryRun bool
}

// InstallResult reports what an install did.
type InstallResult struct {
	Manifest   *manifest.Manifest
	InstallDir string
	Plan       *plan.Plan
	Receipt    *receipt.Receipt
	DryRun     bool
}

// Install stages the payload, records the receipt, and runs the
// post-install integrations. On a partial integration failure the
// receipt still lands in the install root describing everything that
// completed, so uninstall can clean up.
func Install(opts InstallOptions) (*InstallResult, error) {
	logger := logging.GetLogger("commands.install")

	p, err := paths.New(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return nil, err
	}

	installDir := opts.InstallDir
	if installDir == "" {
		configured := m.Product.InstallDir
		if configured == "" {
			configured = paths.DefaultInstallDir(m.Product.Name)
		}
		installDir, err = paths.ResolveInstallDir(configured)
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("manifest", p.ManifestPath()).
		Str("install_dir", installDir).
		Bool("dry_run", opts.DryRun).
		Msg("Starting install")

	sourceRoot := opts.SourceDir
	if sourceRoot == "" {
		sourceRoot = p.SourceRoot()
	}

	pl, err := plan.Install(m, sourceRoot, installDir)
	if err != nil {
		return nil, err
	}

	if err := executor.New(opts.DryRun).Execute(pl.Operations); err != nil {
		return nil, err
	}

	r := &receipt.Receipt{
		Product:     m.Product.Name,
		Version:     m.Product.Version,
		Publisher:   m.Product.Publisher,
		InstallDir:  installDir,
		InstalledAt: time.Now().UTC(),
		Files:       pl.Files,
		Dirs:        pl.Dirs,
	}

	if !opts.DryRun {
		r.Checksums = make(map[string]string, len(r.Files))
		for _, rel := range r.Files {
			sum, err := hashutil.CalculateFileChecksum(receiptFilePath(r, rel))
			if err != nil {
				logger.Warn().Err(err).Str("file", rel).Msg("Failed to checksum staged file")
				continue
			}
			r.Checksums[rel] = sum
		}
	}

	hooks, err := resolveHooks(opts.Hooks, opts.Store, m, opts.DryRun)
	if err != nil {
		return nil, err
	}
	hookErr := hooks.PostInstall(m, installDir, r)

	result := &InstallResult{
		Manifest:   m,
		InstallDir: installDir,
		Plan:       pl,
		Receipt:    r,
		DryRun:     opts.DryRun,
	}

	if opts.DryRun {
		return result, hookErr
	}

	// Written even when a hook failed: the receipt must describe what
	// actually happened for uninstall to undo it.
	if err := receipt.Write(r); err != nil {
		if hookErr != nil {
			return result, hookErr
		}
		return result, err
	}

	if hookErr != nil {
		return result, hookErr
	}

	logger.Info().
		Int("files", len(r.Files)).
		Int("path_entries", len(r.PathEntries)).
		Msg("Install complete")
	return result, nil
}

// resolveHooks picks the lifecycle hooks: an explicit override, or the
// live integrations over the given or system store.
func resolveHooks(hooks *lifecycle.Hooks, store envpath.Store, m *manifest.Manifest, dryRun bool) (*lifecycle.Hooks, error) {
	if hooks != nil {
		hooks.DryRun = dryRun
		return hooks, nil
	}

	if store == nil {
		scope, err := m.Scope()
		if err != nil {
			return nil, err
		}
		store, err = envpath.NewSystemStore(scope)
		if err != nil {
			return nil, err
		}
	}

	return lifecycle.New(store, dryRun), nil
}
