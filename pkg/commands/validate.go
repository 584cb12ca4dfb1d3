package commands

import (
	"os"
	"path/filepath"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/paths"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// receiptFilePath resolves a receipt-relative file against its install
// root.
func receiptFilePath(r *receipt.Receipt, rel string) string {
	return filepath.Join(r.InstallDir, filepath.FromSlash(rel))
}

// ValidateOptions configures manifest validation.
type ValidateOptions struct {
	// ManifestPath names the manifest; empty triggers discovery.
	ManifestPath string
}

// ValidateResult reports what the manifest would do.
type ValidateResult struct {
	Manifest     *manifest.Manifest
	ManifestPath string

	// InstallDir is the install root the manifest resolves to.
	InstallDir string

	// PathEntries previews the PATH entries install would add.
	PathEntries []string

	// MissingSources lists component sources that do not exist on
	// disk.
	MissingSources []string
}

// Validate loads the manifest, checks its structure, and verifies that
// every component source exists. Missing sources are reported, not
// fatal, so a manifest can be validated before the payload is built.
func Validate(opts ValidateOptions) (*ValidateResult, error) {
	p, err := paths.New(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return nil, err
	}

	configured := m.Product.InstallDir
	if configured == "" {
		configured = paths.DefaultInstallDir(m.Product.Name)
	}
	installDir, err := paths.ResolveInstallDir(configured)
	if err != nil {
		return nil, err
	}

	result := &ValidateResult{
		Manifest:     m,
		ManifestPath: p.ManifestPath(),
		InstallDir:   installDir,
		PathEntries:  m.PathEntries(installDir),
	}

	for _, c := range m.Components {
		source := filepath.Join(p.SourceRoot(), filepath.FromSlash(c.Source))
		if _, err := os.Stat(source); err != nil {
			result.MissingSources = append(result.MissingSources, c.Source)
		}
	}

	return result, nil
}

// InitManifestOptions configures manifest scaffolding.
type InitManifestOptions struct {
	// Dir is the directory to write wtsetup.toml into; empty means the
	// current directory.
	Dir string

	// Force overwrites an existing manifest.
	Force bool
}

// InitManifest writes a documented example manifest for a new project.
func InitManifest(opts InitManifestOptions) (string, error) {
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		dir = cwd
	}

	path := filepath.Join(dir, paths.ManifestFileName)
	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.Newf(errors.ErrInvalidInput, "%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := manifest.ExampleTOML()
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return path, nil
}
