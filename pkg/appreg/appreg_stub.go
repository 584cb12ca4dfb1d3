//go:build !windows

package appreg

import "github.com/whispertools/wtsetup/pkg/errors"

// Register is only available on Windows.
func Register(e Entry) error {
	return errors.New(errors.ErrUnsupported, "uninstall registry entry requires Windows")
}

// Unregister is only available on Windows.
func Unregister(displayName string) error {
	return errors.New(errors.ErrUnsupported, "uninstall registry entry requires Windows")
}
