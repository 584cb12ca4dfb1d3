//go:build windows

package shortcut

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/whispertools/wtsetup/pkg/errors"
)

// Create writes the .lnk file through the WScript.Shell COM object,
// driven by PowerShell. There is no Win32 API for shortcut files short
// of raw COM, and this is how unattended installers do it.
func Create(s Shortcut) error {
	var script strings.Builder
	script.WriteString("$ws = New-Object -ComObject WScript.Shell; ")
	fmt.Fprintf(&script, "$lnk = $ws.CreateShortcut(%s); ", psQuote(s.LinkPath))
	fmt.Fprintf(&script, "$lnk.TargetPath = %s; ", psQuote(s.Target))
	if s.Arguments != "" {
		fmt.Fprintf(&script, "$lnk.Arguments = %s; ", psQuote(s.Arguments))
	}
	if s.WorkDir != "" {
		fmt.Fprintf(&script, "$lnk.WorkingDirectory = %s; ", psQuote(s.WorkDir))
	}
	if s.Icon != "" {
		fmt.Fprintf(&script, "$lnk.IconLocation = %s; ", psQuote(s.Icon))
	}
	script.WriteString("$lnk.Save()")

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script.String())
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrShortcutCreate, "failed to create shortcut %s: %s",
			s.LinkPath, strings.TrimSpace(string(output)))
	}
	return nil
}

// psQuote wraps a string in PowerShell single quotes, escaping
// embedded quotes by doubling.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
