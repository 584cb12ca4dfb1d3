// Package wix renders an installer manifest as a WiX v3 authoring
// document (.wxs), so the same wtsetup.toml can drive an MSI build.
// Payload files are left to heat.exe harvesting via ComponentGroup
// references; this package authors the product skeleton, the PATH
// environment components, and the shortcuts.
package wix

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/manifest"
)

const wixNamespace = "http://schemas.microsoft.com/wix/2006/wi"

// Export renders the manifest as a WiX v3 document. The output is
// deterministic: the same manifest always produces the same bytes, so
// the .wxs can live under version control.
func Export(m *manifest.Manifest) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	scope, err := m.Scope()
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	wix := doc.CreateElement("Wix")
	wix.CreateAttr("xmlns", wixNamespace)

	product := wix.CreateElement("Product")
	product.CreateAttr("Id", "*")
	product.CreateAttr("Name", m.Product.Name)
	product.CreateAttr("Language", "1033")
	product.CreateAttr("Version", m.Product.Version)
	product.CreateAttr("Manufacturer", m.Product.Publisher)
	product.CreateAttr("UpgradeCode", nameGUID("upgrade", m.Product.Name))

	pkg := product.CreateElement("Package")
	pkg.CreateAttr("InstallerVersion", "500")
	pkg.CreateAttr("Compressed", "yes")
	if scope == envpath.ScopeMachine {
		pkg.CreateAttr("InstallScope", "perMachine")
	} else {
		pkg.CreateAttr("InstallScope", "perUser")
	}

	upgrade := product.CreateElement("MajorUpgrade")
	upgrade.CreateAttr("DowngradeErrorMessage",
		fmt.Sprintf("A newer version of %s is already installed.", m.Product.Name))

	media := product.CreateElement("MediaTemplate")
	media.CreateAttr("EmbedCab", "yes")

	writeDirectories(product, m, scope)
	writePathComponents(product, m)
	writeShortcutComponents(product, m)
	writeFeature(product, m)

	doc.Indent(4)
	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to serialize WiX document")
	}
	return out, nil
}

// writeDirectories authors the TARGETDIR tree: the install root under
// Program Files plus the shortcut folders.
func writeDirectories(product *etree.Element, m *manifest.Manifest, scope envpath.Scope) {
	target := product.CreateElement("Directory")
	target.CreateAttr("Id", "TARGETDIR")
	target.CreateAttr("Name", "SourceDir")

	programFiles := target.CreateElement("Directory")
	if scope == envpath.ScopeMachine {
		programFiles.CreateAttr("Id", "ProgramFiles64Folder")
	} else {
		programFiles.CreateAttr("Id", "LocalAppDataFolder")
	}

	install := programFiles.CreateElement("Directory")
	install.CreateAttr("Id", "INSTALLDIR")
	install.CreateAttr("Name", m.Product.Name)

	for _, c := range m.Components {
		if rel := destRel(c); rel != "" {
			dir := install.CreateElement("Directory")
			dir.CreateAttr("Id", ident("dir", rel))
			dir.CreateAttr("Name", rel)
		}
	}

	if hasShortcut(m, manifest.LocationStartMenu) {
		menu := target.CreateElement("Directory")
		menu.CreateAttr("Id", "ProgramMenuFolder")
	}
	if hasShortcut(m, manifest.LocationDesktop) {
		desktop := target.CreateElement("Directory")
		desktop.CreateAttr("Id", "DesktopFolder")
	}
}

// writePathComponents authors one Environment component per add_to_path
// entry. Part="last" appends, Action="set" creates the value when it is
// absent, and uninstalling the component removes the entry again, which
// mirrors what the lifecycle hooks do for direct installs.
func writePathComponents(product *etree.Element, m *manifest.Manifest) {
	entries := pathEntryValues(m)
	if len(entries) == 0 {
		return
	}

	ref := product.CreateElement("DirectoryRef")
	ref.CreateAttr("Id", "INSTALLDIR")

	system := "no"
	if m.Path.Scope == string(envpath.ScopeMachine) {
		system = "yes"
	}

	for _, value := range entries {
		component := ref.CreateElement("Component")
		component.CreateAttr("Id", ident("cmpPath", value))
		component.CreateAttr("Guid", nameGUID("path", m.Product.Name+"|"+value))

		keyPath := component.CreateElement("RegistryValue")
		keyPath.CreateAttr("Root", "HKLM")
		keyPath.CreateAttr("Key", registryKey(m))
		keyPath.CreateAttr("Name", ident("path", value))
		keyPath.CreateAttr("Type", "integer")
		keyPath.CreateAttr("Value", "1")
		keyPath.CreateAttr("KeyPath", "yes")

		env := component.CreateElement("Environment")
		env.CreateAttr("Id", ident("env", value))
		env.CreateAttr("Name", envpath.ValueName)
		env.CreateAttr("Value", value)
		env.CreateAttr("Part", "last")
		env.CreateAttr("Action", "set")
		env.CreateAttr("Permanent", "no")
		env.CreateAttr("System", system)
	}
}

// writeShortcutComponents authors one component per shortcut, keyed by
// a registry value as advertised-shortcut authoring requires.
func writeShortcutComponents(product *etree.Element, m *manifest.Manifest) {
	for _, s := range m.Shortcuts {
		folder := "ProgramMenuFolder"
		if s.Location == manifest.LocationDesktop {
			folder = "DesktopFolder"
		}

		ref := product.CreateElement("DirectoryRef")
		ref.CreateAttr("Id", folder)

		component := ref.CreateElement("Component")
		component.CreateAttr("Id", ident("cmpShortcut", s.Name))
		component.CreateAttr("Guid", nameGUID("shortcut", m.Product.Name+"|"+s.Name))

		link := component.CreateElement("Shortcut")
		link.CreateAttr("Id", ident("shortcut", s.Name))
		link.CreateAttr("Name", s.Name)
		link.CreateAttr("Target", "[INSTALLDIR]"+windowsPath(s.Target))
		link.CreateAttr("WorkingDirectory", "INSTALLDIR")
		if s.Arguments != "" {
			link.CreateAttr("Arguments", s.Arguments)
		}
		if s.Icon != "" {
			link.CreateAttr("Icon", ident("icon", s.Icon))
		}

		keyPath := component.CreateElement("RegistryValue")
		keyPath.CreateAttr("Root", "HKCU")
		keyPath.CreateAttr("Key", registryKey(m))
		keyPath.CreateAttr("Name", ident("shortcut", s.Name))
		keyPath.CreateAttr("Type", "integer")
		keyPath.CreateAttr("Value", "1")
		keyPath.CreateAttr("KeyPath", "yes")
	}
}

// writeFeature authors the single feature tying everything together.
// Payload file components come from heat-harvested groups named after
// the manifest components.
func writeFeature(product *etree.Element, m *manifest.Manifest) {
	feature := product.CreateElement("Feature")
	feature.CreateAttr("Id", "Main")
	feature.CreateAttr("Title", m.Product.Name)
	feature.CreateAttr("Level", "1")

	for _, c := range m.Components {
		ref := feature.CreateElement("ComponentGroupRef")
		ref.CreateAttr("Id", ident("cmp", c.Name))
	}
	for _, value := range pathEntryValues(m) {
		ref := feature.CreateElement("ComponentRef")
		ref.CreateAttr("Id", ident("cmpPath", value))
	}
	for _, s := range m.Shortcuts {
		ref := feature.CreateElement("ComponentRef")
		ref.CreateAttr("Id", ident("cmpShortcut", s.Name))
	}
}

// pathEntryValues returns the [INSTALLDIR]-relative PATH values in
// manifest order.
func pathEntryValues(m *manifest.Manifest) []string {
	var values []string
	for _, c := range m.Components {
		for _, sub := range c.AddToPath {
			rel := sub
			if dest := destRel(c); dest != "" {
				rel = dest + `\` + sub
			}
			values = append(values, "[INSTALLDIR]"+windowsPath(rel))
		}
	}
	return values
}

// destRel returns the component's directory relative to the install
// root, or "" when the component stages into the root itself.
func destRel(c manifest.Component) string {
	dest := c.Dest
	if dest == "" {
		dest = c.Name
	}
	if dest == "." {
		return ""
	}
	return dest
}

func hasShortcut(m *manifest.Manifest, location string) bool {
	for _, s := range m.Shortcuts {
		if s.Location == location {
			return true
		}
	}
	return false
}

func registryKey(m *manifest.Manifest) string {
	publisher := m.Product.Publisher
	if publisher == "" {
		publisher = m.Product.Name
	}
	return `Software\` + publisher + `\` + m.Product.Name
}

// windowsPath normalizes forward slashes; WiX authoring always uses
// backslashes regardless of the host the exporter runs on.
func windowsPath(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

// ident derives a WiX identifier from an arbitrary string. Identifiers
// allow only ASCII letters, digits, underscores and periods.
func ident(prefix, s string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// nameGUID derives a stable GUID from a name, SHA-1 based in the
// manner of RFC 4122 version 5. Stable component GUIDs are what make
// MSI upgrades work, so they must never depend on when or where the
// export ran.
func nameGUID(kind, name string) string {
	sum := sha1.Sum([]byte("wtsetup:" + kind + ":" + name))
	sum[6] = (sum[6] & 0x0f) | 0x50
	sum[8] = (sum[8] & 0x3f) | 0x80
	return strings.ToUpper(fmt.Sprintf("%x-%x-%x-%x-%x",
		sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16]))
}
