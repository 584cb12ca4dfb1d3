package commands

import (
	"os"

	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/internal/hashutil"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// StatusOptions configures a status query.
type StatusOptions struct {
	// InstallDir is the install root holding the receipt.
	InstallDir string

	// Store is the PATH store to inspect. Nil selects the system store
	// for the scope the receipt recorded.
	Store envpath.Store
}

// EntryStatus reports whether one recorded item still holds.
type EntryStatus struct {
	Item    string
	Present bool
}

// StatusResult is the full picture of an installation.
type StatusResult struct {
	Receipt *receipt.Receipt

	// Files reports a sample check: true when every recorded file
	// still exists.
	FilesIntact bool

	// MissingFiles lists recorded files that no longer exist.
	MissingFiles []string

	// ModifiedFiles lists recorded files whose checksum no longer
	// matches the receipt.
	ModifiedFiles []string

	// PathEntries reports each recorded PATH entry against the live
	// store.
	PathEntries []EntryStatus

	// Shortcuts reports each recorded shortcut file.
	Shortcuts []EntryStatus
}

// Status checks a recorded installation against the live system: the
// staged files, the PATH entries, and the shortcut files.
func Status(opts StatusOptions) (*StatusResult, error) {
	r, err := receipt.Read(opts.InstallDir)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{Receipt: r, FilesIntact: true}

	for _, rel := range r.Files {
		path := receiptFilePath(r, rel)
		if _, err := os.Stat(path); err != nil {
			result.FilesIntact = false
			result.MissingFiles = append(result.MissingFiles, rel)
			continue
		}
		want, ok := r.Checksums[rel]
		if !ok {
			continue
		}
		got, err := hashutil.CalculateFileChecksum(path)
		if err != nil || got != want {
			result.FilesIntact = false
			result.ModifiedFiles = append(result.ModifiedFiles, rel)
		}
	}

	store := opts.Store
	if store == nil {
		scope := envpath.Scope(r.PathScope)
		if scope == "" {
			scope = envpath.ScopeMachine
		}
		store, err = envpath.NewSystemStore(scope)
		if err != nil {
			return nil, err
		}
	}

	maintainer := envpath.NewMaintainer(store)
	for _, dir := range r.PathEntries {
		present, err := maintainer.HasEntry(dir)
		if err != nil {
			return nil, err
		}
		result.PathEntries = append(result.PathEntries, EntryStatus{Item: dir, Present: present})
	}

	for _, link := range r.Shortcuts {
		_, err := os.Stat(link)
		result.Shortcuts = append(result.Shortcuts, EntryStatus{Item: link, Present: err == nil})
	}

	return result, nil
}
