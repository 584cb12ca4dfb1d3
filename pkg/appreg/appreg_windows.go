//go:build windows

package appreg

import (
	"golang.org/x/sys/windows/registry"

	"github.com/whispertools/wtsetup/pkg/errors"
)

const uninstallKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\`

// Register creates or updates the product's uninstall entry. WOW64_64KEY
// keeps the entry in the 64-bit view regardless of process bitness.
func Register(e Entry) error {
	keyPath := uninstallKeyPath + e.DisplayName
	k, _, err := registry.CreateKey(registry.LOCAL_MACHINE, keyPath, registry.ALL_ACCESS|registry.WOW64_64KEY)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRegistryWrite, "failed to create uninstall key for %s", e.DisplayName)
	}
	defer k.Close()

	stringValues := map[string]string{
		"DisplayName":     e.DisplayName,
		"DisplayVersion":  e.DisplayVersion,
		"Publisher":       e.Publisher,
		"InstallLocation": e.InstallLocation,
		"UninstallString": e.UninstallString,
		"DisplayIcon":     e.DisplayIcon,
		"InstallDate":     e.InstallDate,
	}
	for name, value := range stringValues {
		if err := k.SetStringValue(name, value); err != nil {
			return errors.Wrapf(err, errors.ErrRegistryWrite, "failed to set %s", name)
		}
	}

	dwordValues := map[string]uint32{
		"NoModify":      1,
		"NoRepair":      1,
		"EstimatedSize": e.EstimatedSizeKB,
	}
	for name, value := range dwordValues {
		if err := k.SetDWordValue(name, value); err != nil {
			return errors.Wrapf(err, errors.ErrRegistryWrite, "failed to set %s", name)
		}
	}

	return nil
}

// Unregister removes the product's uninstall entry. A missing entry is
// not an error.
func Unregister(displayName string) error {
	err := registry.DeleteKey(registry.LOCAL_MACHINE, uninstallKeyPath+displayName)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrRegistryWrite, "failed to delete uninstall key for %s", displayName)
	}
	return nil
}
