package commands

import (
	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/logging"
)

// PathOptions configures a direct PATH operation.
type PathOptions struct {
	// Dir is the directory to add or remove.
	Dir string

	// Scope selects the environment key when Store is nil.
	Scope envpath.Scope

	// Store overrides the system store, for tests.
	Store envpath.Store

	// Notify overrides the environment-change broadcast; nil uses the
	// system broadcast.
	Notify func() error
}

// pathMaintainer resolves the store and wraps it in a maintainer.
func pathMaintainer(opts PathOptions) (*envpath.Maintainer, error) {
	store := opts.Store
	if store == nil {
		var err error
		store, err = envpath.NewSystemStore(opts.Scope)
		if err != nil {
			return nil, err
		}
	}
	return envpath.NewMaintainer(store), nil
}

// notify broadcasts the environment change, logging rather than
// failing when the broadcast cannot be delivered.
func notify(opts PathOptions) {
	fn := opts.Notify
	if fn == nil {
		fn = envpath.NotifyEnvironmentChange
	}
	if err := fn(); err != nil {
		logger := logging.GetLogger("commands.path")
		logger.Warn().Err(err).Msg("Environment change broadcast failed")
	}
}

// PathAdd appends a directory to the PATH list unless already present.
func PathAdd(opts PathOptions) error {
	m, err := pathMaintainer(opts)
	if err != nil {
		return err
	}
	if err := m.AddEntry(opts.Dir); err != nil {
		return err
	}
	notify(opts)
	return nil
}

// PathRemove removes a directory from the PATH list; a missing entry
// is a no-op.
func PathRemove(opts PathOptions) error {
	m, err := pathMaintainer(opts)
	if err != nil {
		return err
	}
	if err := m.RemoveEntry(opts.Dir); err != nil {
		return err
	}
	notify(opts)
	return nil
}

// PathList returns the current PATH entries in order.
func PathList(opts PathOptions) ([]string, error) {
	m, err := pathMaintainer(opts)
	if err != nil {
		return nil, err
	}
	return m.Entries()
}
