package envpath

import "github.com/whispertools/wtsetup/pkg/errors"

// Scope selects which environment key the system store operates on.
type Scope string

const (
	// ScopeMachine targets the machine-wide environment key. Writing
	// it requires elevation.
	ScopeMachine Scope = "machine"

	// ScopeUser targets the current user's environment key.
	ScopeUser Scope = "user"
)

// ParseScope validates a scope string from configuration.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeMachine, ScopeUser:
		return Scope(s), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown PATH scope %q (want machine or user)", s)
	}
}
