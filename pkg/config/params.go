package config

import (
	"mksls/pkg/errors"
	"mksls/pkg/types"
)

// Params is the merged, validated set of values one run executes
// under. CLI values take precedence; the config file fills the gaps.
type Params struct {
	// Dir is the root directory scanned for spec files.
	Dir string

	// Filename is the base name of spec files.
	Filename string

	// BackupDir is where backed up files go.
	BackupDir string

	// Depth limits scan recursion; negative means unlimited.
	Depth int

	// Policy is the fixed conflict policy, or PolicyNone for
	// interactive runs.
	Policy types.StickyPolicy
}

// CLIOverrides carries the flag values that were explicitly set on the
// command line. Empty strings and nil pointers mean "not given".
type CLIOverrides struct {
	Filename     string
	BackupDir    string
	Depth        *int
	AlwaysSkip   bool
	AlwaysBackup bool
}

// NewParams merges CLI overrides over the loaded config and validates
// the result. The two always-flags are mutually exclusive; cobra
// enforces this for flags, but the config file can still set both.
func NewParams(dir string, cfg Config, cli CLIOverrides) (Params, error) {
	p := Params{
		Dir:       dir,
		Filename:  cfg.Filename,
		BackupDir: cfg.BackupDir,
		Depth:     cfg.Depth,
	}

	if cli.Filename != "" {
		p.Filename = cli.Filename
	}
	if cli.BackupDir != "" {
		p.BackupDir = cli.BackupDir
	}
	if cli.Depth != nil {
		p.Depth = *cli.Depth
	}

	alwaysSkip := cfg.AlwaysSkip || cli.AlwaysSkip
	alwaysBackup := cfg.AlwaysBackup || cli.AlwaysBackup
	if alwaysSkip && alwaysBackup {
		return Params{}, errors.New(errors.ErrInvalidInput,
			"always_skip and always_backup are mutually exclusive")
	}

	switch {
	case alwaysSkip:
		p.Policy = types.PolicyAlwaysSkip
	case alwaysBackup:
		p.Policy = types.PolicyAlwaysBackup
	default:
		p.Policy = types.PolicyNone
	}

	if p.Filename == "" {
		return Params{}, errors.New(errors.ErrInvalidInput, "spec filename must not be empty")
	}
	if p.BackupDir == "" {
		return Params{}, errors.New(errors.ErrInvalidInput, "backup directory must not be empty")
	}

	return p, nil
}
