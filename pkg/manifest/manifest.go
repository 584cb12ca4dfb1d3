// Package manifest defines the declarative installer manifest for
// wtsetup. The manifest names the product, the payload components to
// stage, the shortcuts to create, and the PATH/registry wiring the
// lifecycle hooks perform.
package manifest

import (
	"path/filepath"

	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/errors"
)

// Shortcut locations
const (
	LocationStartMenu = "startmenu"
	LocationDesktop   = "desktop"
)

// Manifest is the root of a wtsetup.toml file.
type Manifest struct {
	Product    Product        `koanf:"product" toml:"product"`
	Components []Component    `koanf:"component" toml:"component"`
	Shortcuts  []Shortcut     `koanf:"shortcut" toml:"shortcut"`
	Path       PathConfig     `koanf:"path" toml:"path"`
	Registry   RegistryConfig `koanf:"registry" toml:"registry"`
}

// Product identifies the application being installed.
type Product struct {
	Name       string `koanf:"name" toml:"name"`
	Version    string `koanf:"version" toml:"version"`
	Publisher  string `koanf:"publisher" toml:"publisher"`
	InstallDir string `koanf:"install_dir" toml:"install_dir"`
}

// Component is one payload tree to stage into the install root.
type Component struct {
	Name   string `koanf:"name" toml:"name"`
	Source string `koanf:"source" toml:"source"`

	// Dest is the subdirectory of the install root the component lands
	// in. Empty means the component name; "." means the install root
	// itself.
	Dest string `koanf:"dest" toml:"dest,omitempty"`

	// AddToPath lists subdirectories of the staged component to put on
	// the PATH, e.g. ["bin"] for an FFmpeg toolchain.
	AddToPath []string `koanf:"add_to_path" toml:"add_to_path,omitempty"`
}

// Shortcut describes one shortcut to create after staging.
type Shortcut struct {
	Name      string `koanf:"name" toml:"name"`
	Target    string `koanf:"target" toml:"target"`
	Location  string `koanf:"location" toml:"location"`
	Icon      string `koanf:"icon" toml:"icon,omitempty"`
	Arguments string `koanf:"arguments" toml:"arguments,omitempty"`
}

// PathConfig controls PATH maintenance.
type PathConfig struct {
	Scope string `koanf:"scope" toml:"scope"`
}

// RegistryConfig controls Windows registry wiring.
type RegistryConfig struct {
	UninstallEntry bool `koanf:"uninstall_entry" toml:"uninstall_entry"`
}

// DestDir returns the absolute directory a component is staged into.
func (c Component) DestDir(installDir string) string {
	dest := c.Dest
	if dest == "" {
		dest = c.Name
	}
	if dest == "." {
		return installDir
	}
	return filepath.Join(installDir, dest)
}

// PathEntries resolves every add_to_path subdirectory against the
// install root, in manifest order. These are the exact strings the
// maintainer adds on install and removes on uninstall.
func (m *Manifest) PathEntries(installDir string) []string {
	var entries []string
	for _, c := range m.Components {
		for _, sub := range c.AddToPath {
			entries = append(entries, filepath.Join(c.DestDir(installDir), sub))
		}
	}
	return entries
}

// Scope returns the parsed PATH scope.
func (m *Manifest) Scope() (envpath.Scope, error) {
	return envpath.ParseScope(m.Path.Scope)
}

// Validate checks the manifest for the errors planning cannot recover
// from.
func (m *Manifest) Validate() error {
	if m.Product.Name == "" {
		return errors.New(errors.ErrManifestValid, "product.name is required")
	}
	if m.Product.Version == "" {
		return errors.New(errors.ErrManifestValid, "product.version is required")
	}
	if len(m.Components) == 0 {
		return errors.New(errors.ErrManifestValid, "at least one [[component]] is required")
	}

	seen := make(map[string]bool)
	for _, c := range m.Components {
		if c.Name == "" {
			return errors.New(errors.ErrManifestValid, "component name is required")
		}
		if c.Source == "" {
			return errors.Newf(errors.ErrManifestValid, "component %q has no source", c.Name)
		}
		if seen[c.Name] {
			return errors.Newf(errors.ErrManifestValid, "duplicate component %q", c.Name)
		}
		seen[c.Name] = true

		for _, sub := range c.AddToPath {
			if sub == "" {
				return errors.Newf(errors.ErrManifestValid, "component %q has an empty add_to_path entry", c.Name)
			}
		}
	}

	for _, s := range m.Shortcuts {
		if s.Name == "" || s.Target == "" {
			return errors.New(errors.ErrManifestValid, "shortcut name and target are required")
		}
		if s.Location != LocationStartMenu && s.Location != LocationDesktop {
			return errors.Newf(errors.ErrManifestValid, "shortcut %q has unknown location %q", s.Name, s.Location)
		}
	}

	if _, err := m.Scope(); err != nil {
		return errors.Wrap(err, errors.ErrManifestValid, "invalid [path] section")
	}

	return nil
}
