package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Installer and PATH maintainer for Whisper Transcriber"
	MsgInstallShort   = "Install the product described by the manifest"
	MsgUninstallShort = "Uninstall a previous installation from its receipt"
	MsgStatusShort    = "Show the state of an installation"
	MsgValidateShort  = "Validate the manifest without installing"
	MsgInitShort      = "Write an example wtsetup.toml"
	MsgExportShort    = "Export the manifest to other packaging formats"
	MsgExportWixShort = "Render the manifest as WiX v3 authoring (.wxs)"
	MsgPathShort      = "Maintain PATH environment entries directly"
	MsgPathAddShort   = "Add a directory to the persistent PATH"
	MsgPathRmShort    = "Remove a directory from the persistent PATH"
	MsgPathListShort  = "List the persistent PATH entries"
	MsgVersionShort   = "Print version information"

	MsgRootLong = `wtsetup installs Whisper Transcriber from a declarative wtsetup.toml
manifest: it stages the payload, maintains the PATH environment
variable, creates shortcuts, and registers the product for
Add/Remove Programs. Everything install does is recorded in a
receipt, and uninstall undoes exactly that.`

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgInstalledFormat = "\nInstalled %s %s to %s\n"
	MsgUninstalled     = "\nUninstalled %s\n"
	MsgManifestValid   = "Manifest is valid."
	MsgManifestCreated = "Created %s\n"
	MsgWixWritten      = "Wrote %s\n"
	MsgMissingSources  = "Missing component sources (build the payload first):"
	MsgPathAdded       = "Added %s to the %s PATH\n"
	MsgPathRemoved     = "Removed %s from the %s PATH\n"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without executing them"
	MsgFlagManifest   = "Path to the wtsetup.toml manifest"
	MsgFlagInstallDir = "Install directory (overrides the manifest)"
	MsgFlagSource     = "Source root for component payloads (defaults to the manifest's directory)"
	MsgFlagScope      = "PATH scope: machine or user"
	MsgFlagForce      = "Overwrite an existing file"
	MsgFlagOutput     = "Output file (defaults to stdout)"
)
