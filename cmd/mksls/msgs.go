package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort    = "Make the symlinks specified in files"
	MsgVersionShort = "Print version information"
	MsgTopicsShort  = "Display available documentation topics"
	MsgTopicsLong   = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFilename     = "Base name of the spec files to look for (default from config file, \"sls\" out of the box)"
	MsgFlagBackupDir    = "Directory backed up files are moved into (default from config file)"
	MsgFlagDepth        = "Scan depth limit, negative for unlimited"
	MsgFlagAlwaysSkip   = "Skip every conflicting symlink without prompting"
	MsgFlagAlwaysBackup = "Back up every conflicting file without prompting"
)

// Long messages loaded from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
