// Package appreg maintains the product's entry in the Windows
// "Apps & features" / "Add or Remove Programs" list.
package appreg

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is the data written under the product's uninstall key.
type Entry struct {
	DisplayName     string
	DisplayVersion  string
	Publisher       string
	InstallLocation string
	UninstallString string
	DisplayIcon     string
	InstallDate     string
	EstimatedSizeKB uint32
}

// NewEntry builds the uninstall entry for an installed product. The
// uninstall string points back at wtsetup itself. iconPath may name
// the installed executable to use for DisplayIcon; empty falls back to
// the uninstaller.
func NewEntry(product, version, publisher, installDir, iconPath string) Entry {
	exe, err := os.Executable()
	if err != nil {
		exe = "wtsetup"
	}

	if iconPath == "" {
		iconPath = exe
	}

	sizeKB, _ := DirSizeKB(installDir)

	return Entry{
		DisplayName:     product,
		DisplayVersion:  version,
		Publisher:       publisher,
		InstallLocation: installDir,
		UninstallString: fmt.Sprintf(`"%s" uninstall --install-dir "%s"`, exe, installDir),
		DisplayIcon:     iconPath + ",0",
		InstallDate:     time.Now().Format("20060102"),
		EstimatedSizeKB: sizeKB,
	}
}

// DirSizeKB returns the approximate size of a directory tree in
// kilobytes, rounded up, for the EstimatedSize registry field.
// Unreadable entries are skipped rather than failing the walk.
func DirSizeKB(root string) (uint32, error) {
	var total uint64
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	if err != nil {
		return 0, err
	}

	kb := (total + 1023) / 1024
	if kb > uint64(^uint32(0)) {
		return ^uint32(0), nil
	}
	return uint32(kb), nil
}
