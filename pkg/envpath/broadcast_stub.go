//go:build !windows

package envpath

// NotifyEnvironmentChange is a no-op outside Windows.
func NotifyEnvironmentChange() error { return nil }
