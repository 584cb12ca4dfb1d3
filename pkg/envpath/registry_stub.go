//go:build !windows

package envpath

import "github.com/whispertools/wtsetup/pkg/errors"

// NewSystemStore is only available on Windows; other platforms get a
// typed unsupported error so callers can degrade cleanly.
func NewSystemStore(scope Scope) (Store, error) {
	return nil, errors.New(errors.ErrUnsupported, "system environment store requires Windows")
}
