// Package lifecycle runs the post-staging and post-removal hooks:
// PATH maintenance, the Add/Remove Programs entry, shortcuts, and the
// environment-change broadcast. The hooks record what they did in the
// receipt so uninstall can undo exactly that.
package lifecycle

import (
	stderrors "errors"

	"github.com/whispertools/wtsetup/pkg/appreg"
	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/logging"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/receipt"
	"github.com/whispertools/wtsetup/pkg/shortcut"
)

// Hooks bundles the side-effecting integrations behind injectable
// functions. Tests swap them for fakes; production code uses New.
type Hooks struct {
	Maintainer *envpath.Maintainer

	CreateShortcut func(shortcut.Shortcut) error
	RemoveShortcut func(linkPath string) error

	RegisterApp   func(appreg.Entry) error
	UnregisterApp func(displayName string) error

	// Notify broadcasts WM_SETTINGCHANGE so running shells pick up the
	// new environment.
	Notify func() error

	DryRun bool
}

// New wires the hooks to the live system integrations for the given
// PATH store.
func New(store envpath.Store, dryRun bool) *Hooks {
	return &Hooks{
		Maintainer:     envpath.NewMaintainer(store),
		CreateShortcut: shortcut.Create,
		RemoveShortcut: shortcut.Remove,
		RegisterApp:    appreg.Register,
		UnregisterApp:  appreg.Unregister,
		Notify:         envpath.NotifyEnvironmentChange,
		DryRun:         dryRun,
	}
}

// PostInstall performs the integrations after staging: PATH entries,
// shortcuts, and the uninstall registry entry. Every completed step is
// recorded in r before the next one runs, so a partial failure still
// leaves an accurate receipt for uninstall to act on.
func (h *Hooks) PostInstall(m *manifest.Manifest, installDir string, r *receipt.Receipt) error {
	logger := logging.GetLogger("lifecycle")

	scope, err := m.Scope()
	if err != nil {
		return err
	}
	r.PathScope = string(scope)

	for _, dir := range m.PathEntries(installDir) {
		if h.DryRun {
			logger.Info().Str("dir", dir).Msg("Would add PATH entry")
			continue
		}
		if err := h.Maintainer.AddEntry(dir); err != nil {
			return err
		}
		r.PathEntries = append(r.PathEntries, dir)
	}

	for _, ms := range m.Shortcuts {
		s, err := shortcut.Resolve(ms, installDir)
		if err != nil {
			return err
		}
		if h.DryRun {
			logger.Info().Str("link", s.LinkPath).Msg("Would create shortcut")
			continue
		}
		if err := h.CreateShortcut(s); err != nil {
			return err
		}
		r.Shortcuts = append(r.Shortcuts, s.LinkPath)
	}

	if m.Registry.UninstallEntry {
		entry := appreg.NewEntry(m.Product.Name, m.Product.Version, m.Product.Publisher,
			installDir, iconPath(m, installDir))
		if h.DryRun {
			logger.Info().Str("product", entry.DisplayName).Msg("Would register uninstall entry")
		} else {
			if err := h.RegisterApp(entry); err != nil {
				return err
			}
			r.UninstallEntry = true
		}
	}

	if !h.DryRun {
		h.broadcast()
	}
	return nil
}

// PostUninstall undoes what the receipt records. Unlike install, every
// step is attempted even when an earlier one fails; the joined errors
// are returned at the end so a stuck shortcut does not strand PATH
// entries.
func (h *Hooks) PostUninstall(r *receipt.Receipt) error {
	logger := logging.GetLogger("lifecycle")

	var errs []error

	for _, dir := range r.PathEntries {
		if h.DryRun {
			logger.Info().Str("dir", dir).Msg("Would remove PATH entry")
			continue
		}
		if err := h.Maintainer.RemoveEntry(dir); err != nil {
			errs = append(errs, err)
		}
	}

	for _, link := range r.Shortcuts {
		if h.DryRun {
			logger.Info().Str("link", link).Msg("Would remove shortcut")
			continue
		}
		if err := h.RemoveShortcut(link); err != nil {
			errs = append(errs, err)
		}
	}

	if r.UninstallEntry {
		if h.DryRun {
			logger.Info().Str("product", r.Product).Msg("Would remove uninstall entry")
		} else if err := h.UnregisterApp(r.Product); err != nil {
			errs = append(errs, err)
		}
	}

	if !h.DryRun {
		h.broadcast()
	}

	return stderrors.Join(errs...)
}

// broadcast tells running processes the environment changed. A failed
// broadcast only delays propagation until the next logon, so it is
// logged but never fails the operation.
func (h *Hooks) broadcast() {
	if err := h.Notify(); err != nil {
		logger := logging.GetLogger("lifecycle")
		logger.Warn().Err(err).Msg("Environment change broadcast failed")
	}
}

// iconPath picks the DisplayIcon for the uninstall entry: the first
// shortcut's resolved target, since that is the user-facing executable.
func iconPath(m *manifest.Manifest, installDir string) string {
	for _, ms := range m.Shortcuts {
		s, err := shortcut.Resolve(ms, installDir)
		if err == nil {
			return s.Target
		}
	}
	return ""
}
