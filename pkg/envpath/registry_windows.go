//go:build windows

package envpath

import (
	"golang.org/x/sys/windows/registry"

	"github.com/whispertools/wtsetup/pkg/errors"
)

// Registry locations of the persistent environment values.
const (
	machineEnvKeyPath = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	userEnvKeyPath    = `Environment`
)

// RegistryStore is the production Store, backed by the Windows
// registry environment key for the selected scope.
type RegistryStore struct {
	root registry.Key
	path string
}

// NewSystemStore opens a Store over the environment key for scope.
// Machine scope requires the process to run elevated.
func NewSystemStore(scope Scope) (Store, error) {
	switch scope {
	case ScopeMachine:
		return &RegistryStore{root: registry.LOCAL_MACHINE, path: machineEnvKeyPath}, nil
	case ScopeUser:
		return &RegistryStore{root: registry.CURRENT_USER, path: userEnvKeyPath}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown PATH scope %q", scope)
	}
}

// ReadString implements Store. Accepts both REG_SZ and REG_EXPAND_SZ
// values.
func (s *RegistryStore) ReadString(name string) (string, error) {
	key, err := registry.OpenKey(s.root, s.path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err == registry.ErrNotExist {
		return "", ErrValueNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// WriteString implements Store. The value is written as REG_EXPAND_SZ,
// the type Windows uses for PATH, so %VAR% references keep expanding.
func (s *RegistryStore) WriteString(name, value string) error {
	key, err := registry.OpenKey(s.root, s.path, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	return key.SetExpandStringValue(name, value)
}
