package envpath

import (
	stderrors "errors"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/logging"
)

// Maintainer performs the read-modify-write PATH maintenance against
// an injected Store. Both operations are idempotent and perform no
// write when the list already has the desired shape.
//
// Unlike the legacy installer script this code replaces, every failure
// to read or write the store is surfaced as an error; nothing is
// swallowed.
type Maintainer struct {
	store     Store
	valueName string
}

// NewMaintainer creates a Maintainer over the given store, operating
// on the standard PATH value.
func NewMaintainer(store Store) *Maintainer {
	return &Maintainer{store: store, valueName: ValueName}
}

// current reads the PATH list, mapping an absent value to the empty
// list.
func (m *Maintainer) current() (string, error) {
	value, err := m.store.ReadString(m.valueName)
	if stderrors.Is(err, ErrValueNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrEnvRead, "failed to read %s value", m.valueName)
	}
	return value, nil
}

// AddEntry appends dir to the PATH list unless an equal entry is
// already present. When the list is absent or empty, dir becomes the
// entire value.
func (m *Maintainer) AddEntry(dir string) error {
	logger := logging.GetLogger("envpath")

	if dir == "" {
		return errors.New(errors.ErrInvalidInput, "empty PATH entry")
	}

	current, err := m.current()
	if err != nil {
		return err
	}

	if Contains(current, dir) {
		logger.Debug().Str("dir", dir).Msg("PATH entry already present, skipping")
		return nil
	}

	updated := Append(current, dir)
	if err := m.store.WriteString(m.valueName, updated); err != nil {
		return errors.Wrapf(err, errors.ErrEnvWrite, "failed to write %s value", m.valueName)
	}

	logger.Info().Str("dir", dir).Msg("Added PATH entry")
	return nil
}

// RemoveEntry removes the first entry equal to dir from the PATH list.
// Absent values and missing entries are no-ops, so the operation is
// idempotent.
func (m *Maintainer) RemoveEntry(dir string) error {
	logger := logging.GetLogger("envpath")

	if dir == "" {
		return errors.New(errors.ErrInvalidInput, "empty PATH entry")
	}

	current, err := m.current()
	if err != nil {
		return err
	}

	if !Contains(current, dir) {
		logger.Debug().Str("dir", dir).Msg("PATH entry not present, skipping")
		return nil
	}

	updated := Remove(current, dir)
	if err := m.store.WriteString(m.valueName, updated); err != nil {
		return errors.Wrapf(err, errors.ErrEnvWrite, "failed to write %s value", m.valueName)
	}

	logger.Info().Str("dir", dir).Msg("Removed PATH entry")
	return nil
}

// HasEntry reports whether the PATH list currently contains dir.
func (m *Maintainer) HasEntry(dir string) (bool, error) {
	current, err := m.current()
	if err != nil {
		return false, err
	}
	return Contains(current, dir), nil
}

// Entries returns the current PATH entries in order.
func (m *Maintainer) Entries() ([]string, error) {
	current, err := m.current()
	if err != nil {
		return nil, err
	}
	return Split(current), nil
}
