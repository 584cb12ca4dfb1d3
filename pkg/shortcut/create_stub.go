//go:build !windows

package shortcut

import "github.com/whispertools/wtsetup/pkg/errors"

// Create is only available on Windows.
func Create(s Shortcut) error {
	return errors.New(errors.ErrUnsupported, "shortcut creation requires Windows")
}
