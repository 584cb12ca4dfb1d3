//go:build windows

package envpath

import (
	"syscall"
	"unsafe"

	"github.com/whispertools/wtsetup/pkg/errors"
)

// NotifyEnvironmentChange broadcasts WM_SETTINGCHANGE so already
// running shells pick up the new PATH. A failed broadcast only delays
// propagation until the next logon; callers decide whether that is
// fatal.
func NotifyEnvironmentChange() error {
	user32 := syscall.NewLazyDLL("user32.dll")
	sendMessageTimeout := user32.NewProc("SendMessageTimeoutW")

	envStr, err := syscall.UTF16PtrFromString("Environment")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode broadcast parameter")
	}

	const (
		hwndBroadcast   = 0xFFFF
		wmSettingChange = 0x001A
		smtoAbortIfHung = 0x0002
	)

	ret, _, callErr := sendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(envStr)),
		uintptr(smtoAbortIfHung),
		uintptr(5000),
		0,
	)
	if ret == 0 {
		return errors.Wrap(callErr, errors.ErrInternal, "WM_SETTINGCHANGE broadcast failed")
	}
	return nil
}
