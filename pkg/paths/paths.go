// Package paths provides centralized path handling for wtsetup:
// manifest discovery, install-root resolution, and the XDG locations
// used for state and logs.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/whispertools/wtsetup/pkg/errors"
)

// Environment variable names
const (
	// EnvManifest overrides manifest discovery
	EnvManifest = "WTSETUP_MANIFEST"

	// EnvInstallDir overrides the manifest's install directory
	EnvInstallDir = "WTSETUP_INSTALL_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Well-known file and directory names. These are not user-configurable;
// they must stay consistent so uninstall can find what install wrote.
const (
	// ManifestFileName is the default manifest file name
	ManifestFileName = "wtsetup.toml"

	// ReceiptFileName is the install receipt written into the install root
	ReceiptFileName = "wtsetup.receipt.yaml"

	// AppDirName is the directory name for wtsetup's own files
	AppDirName = "wtsetup"

	// LogFileName is the name of the log file
	LogFileName = "wtsetup.log"
)

// Paths resolves the locations wtsetup reads and writes.
type Paths struct {
	manifestPath string
	xdgData      string
	xdgCache     string
	xdgState     string
}

// New creates a Paths instance. An empty manifestPath triggers
// discovery: WTSETUP_MANIFEST first, then wtsetup.toml in the current
// directory.
func New(manifestPath string) (*Paths, error) {
	p := &Paths{}

	if manifestPath == "" {
		found, err := findManifest()
		if err != nil {
			return nil, err
		}
		p.manifestPath = found
	} else {
		p.manifestPath = ExpandHome(manifestPath)
	}

	abs, err := filepath.Abs(p.manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for manifest")
	}
	p.manifestPath = abs

	p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	p.xdgCache = filepath.Join(xdg.CacheHome, AppDirName)
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}

	return p, nil
}

// findManifest resolves the manifest path from the environment or the
// current directory.
func findManifest() (string, error) {
	if path := os.Getenv(EnvManifest); path != "" {
		return ExpandHome(path), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	candidate := filepath.Join(cwd, ManifestFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", errors.Newf(errors.ErrNotFound, "no %s found in %s (set %s or pass --manifest)",
		ManifestFileName, cwd, EnvManifest)
}

// ManifestPath returns the resolved manifest location.
func (p *Paths) ManifestPath() string {
	return p.manifestPath
}

// SourceRoot returns the directory component sources are resolved
// against: the manifest's own directory.
func (p *Paths) SourceRoot() string {
	return filepath.Dir(p.manifestPath)
}

// DataDir returns the XDG data directory for wtsetup.
func (p *Paths) DataDir() string {
	return p.xdgData
}

// CacheDir returns the XDG cache directory for wtsetup.
func (p *Paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the directory for state files.
func (p *Paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the wtsetup log file.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ReceiptPath returns the receipt location inside an install root.
func ReceiptPath(installDir string) string {
	return filepath.Join(installDir, ReceiptFileName)
}

// ResolveInstallDir picks the install root: the WTSETUP_INSTALL_DIR
// override wins, then the manifest value. The result is made absolute.
func ResolveInstallDir(manifestInstallDir string) (string, error) {
	dir := os.Getenv(EnvInstallDir)
	if dir == "" {
		dir = manifestInstallDir
	}
	if dir == "" {
		return "", errors.New(errors.ErrInvalidInput, "no install directory configured")
	}

	abs, err := filepath.Abs(ExpandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for install directory")
	}
	return abs, nil
}

// DefaultInstallDir returns the conventional install root for a
// product name: under Program Files on Windows, under the XDG data
// home elsewhere (useful for development and tests).
func DefaultInstallDir(productName string) string {
	if runtime.GOOS == "windows" {
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		return filepath.Join(programFiles, productName)
	}
	return filepath.Join(xdg.DataHome, productName)
}

// ExpandHome expands a leading ~ to the home directory.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// IsWithin checks if a path is inside a parent directory after
// cleaning both.
func IsWithin(path, parent string) bool {
	path = filepath.Clean(path)
	parent = filepath.Clean(parent)

	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
