package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Synchronize Foundry VTT compendium packs with editable source files"
	MsgVersionShort   = "Print version information"
	MsgPackageShort   = "Work with a package's compendium packs"
	MsgWorkonShort    = "Set the package the following commands operate on"
	MsgClearShort     = "Clear the current session package"
	MsgUnpackShort    = "Extract a compendium pack into source files"
	MsgPackShort      = "Reconcile source files back into a compendium pack"
	MsgConfigureShort = "Read and write tool settings"

	// Status messages
	MsgCurrentPackageFormat = "Currently working on %s %s\n"
	MsgNoCurrentPackage     = "No package is currently set. Run 'fvtt package workon <id>' first."
	MsgWorkonFormat         = "Now working on %s %s\n"
	MsgClearDone            = "Cleared the current package."
	MsgUnpackedFormat       = "Unpacked %d entries from %q into %q\n"
	MsgPackedFormat         = "Packed %q: %d written, %d removed\n"
	MsgPackedNoChanges      = "Pack already matches the source directory; nothing to do.\n"

	// Error reporting
	MsgErrorFormat = "Error: %s: %v\n"
)
