// Package shortcut creates and removes the application shortcuts the
// manifest declares, in the all-users Start Menu or on the shared
// desktop.
package shortcut

import (
	"os"
	"path/filepath"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/manifest"
)

// Shortcut is a fully resolved shortcut: where the link file goes and
// what it points at.
type Shortcut struct {
	// LinkPath is the absolute path of the .lnk file.
	LinkPath string

	// Target is the absolute path of the installed executable.
	Target string

	Icon      string
	Arguments string
	WorkDir   string
}

// Resolve turns a manifest shortcut into the concrete link for an
// install root.
func Resolve(s manifest.Shortcut, installDir string) (Shortcut, error) {
	dir, err := locationDir(s.Location)
	if err != nil {
		return Shortcut{}, err
	}

	icon := s.Icon
	if icon != "" && !filepath.IsAbs(icon) {
		icon = filepath.Join(installDir, icon)
	}

	return Shortcut{
		LinkPath:  filepath.Join(dir, s.Name+".lnk"),
		Target:    filepath.Join(installDir, s.Target),
		Icon:      icon,
		Arguments: s.Arguments,
		WorkDir:   installDir,
	}, nil
}

// locationDir maps a manifest location to the shared shortcut folder.
// The all-users locations come from the environment the installer runs
// in.
func locationDir(location string) (string, error) {
	switch location {
	case manifest.LocationStartMenu:
		programData := os.Getenv("ProgramData")
		if programData == "" {
			return "", errors.New(errors.ErrShortcutCreate, "ProgramData environment variable not set")
		}
		return filepath.Join(programData, "Microsoft", "Windows", "Start Menu", "Programs"), nil
	case manifest.LocationDesktop:
		public := os.Getenv("PUBLIC")
		if public == "" {
			return "", errors.New(errors.ErrShortcutCreate, "PUBLIC environment variable not set")
		}
		return filepath.Join(public, "Desktop"), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown shortcut location %q", location)
	}
}

// Remove deletes a previously created link file. Missing links are not
// an error.
func Remove(linkPath string) error {
	err := os.Remove(linkPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove shortcut %s", linkPath)
	}
	return nil
}
