// Package receipt records what an install actually did, so uninstall
// can undo exactly that and nothing else. The receipt lives inside the
// install root and is the single source of truth for removal; the
// manifest is never consulted again after install.
package receipt

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/paths"
)

// Receipt is the persisted record of one installation.
type Receipt struct {
	Product     string    `yaml:"product"`
	Version     string    `yaml:"version"`
	Publisher   string    `yaml:"publisher,omitempty"`
	InstallDir  string    `yaml:"install_dir"`
	InstalledAt time.Time `yaml:"installed_at"`

	// Files holds install-root-relative paths of every staged file, in
	// staging order.
	Files []string `yaml:"files"`

	// Dirs holds install-root-relative paths of every directory staging
	// created, outermost first.
	Dirs []string `yaml:"dirs,omitempty"`

	// Checksums maps each staged file to its sha256, so status can
	// detect modified payloads.
	Checksums map[string]string `yaml:"checksums,omitempty"`

	// PathEntries holds the exact strings added to the PATH list.
	PathEntries []string `yaml:"path_entries,omitempty"`

	// PathScope records which environment key was written.
	PathScope string `yaml:"path_scope,omitempty"`

	// Shortcuts holds the absolute paths of created shortcut files.
	Shortcuts []string `yaml:"shortcuts,omitempty"`

	// UninstallEntry records whether an Add/Remove Programs entry was
	// written for Product.
	UninstallEntry bool `yaml:"uninstall_entry,omitempty"`
}

// Path returns the receipt location for an install root.
func Path(installDir string) string {
	return paths.ReceiptPath(installDir)
}

// Write persists the receipt into its install root.
func Write(r *Receipt) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrReceiptWrite, "failed to encode receipt")
	}

	path := Path(r.InstallDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrReceiptWrite, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrReceiptWrite, "failed to write %s", path)
	}
	return nil
}

// Read loads the receipt from an install root.
func Read(installDir string) (*Receipt, error) {
	path := Path(installDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no receipt at %s (nothing installed?)", path)
		}
		return nil, errors.Wrapf(err, errors.ErrReceiptRead, "failed to read %s", path)
	}

	var r Receipt
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, errors.ErrReceiptRead, "failed to decode %s", path)
	}
	return &r, nil
}
