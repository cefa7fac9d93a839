// Package config loads the mksls configuration file and merges it
// with command line values into the parameters the run uses.
//
// The file is TOML, lives at $XDG_CONFIG_HOME/mksls/mksls.toml, and is
// written with default values on first run so users have something to
// edit. A value given on the command line always wins over the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"mksls/pkg/errors"
	"mksls/pkg/logging"
	"mksls/pkg/paths"
)

// Config holds the user-editable defaults from the config file.
type Config struct {
	// Filename is the base name of spec files to scan for.
	Filename string `toml:"filename"`

	// BackupDir is where conflicting files are moved on backup.
	// Should be absolute.
	BackupDir string `toml:"backup_dir"`

	// Depth limits how deep the scan recurses; negative means
	// unlimited.
	Depth int `toml:"depth"`

	// AlwaysSkip makes every run non-interactive, skipping all
	// conflicts. Mutually exclusive with AlwaysBackup.
	AlwaysSkip bool `toml:"always_skip"`

	// AlwaysBackup makes every run non-interactive, backing up all
	// conflicts. Mutually exclusive with AlwaysSkip.
	AlwaysBackup bool `toml:"always_backup"`
}

// Default returns the built-in configuration values.
func Default(p *paths.Paths) Config {
	return Config{
		Filename:     paths.DefaultSpecFileName,
		BackupDir:    p.BackupDir(),
		Depth:        -1,
		AlwaysSkip:   false,
		AlwaysBackup: false,
	}
}

// Load reads the config file, creating it with default values when it
// does not exist yet.
func Load(p *paths.Paths) (Config, error) {
	logger := logging.GetLogger("config")
	cfgPath := p.ConfigFilePath()

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		cfg := Default(p)
		if werr := writeDefault(cfgPath, cfg); werr != nil {
			// A read-only config dir is not worth failing the run over
			logger.Warn().Err(werr).Str("path", cfgPath).Msg("could not write default config file")
		} else {
			logger.Info().Str("path", cfgPath).Msg("wrote default config file")
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", cfgPath)
	}

	cfg := Default(p)
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", cfgPath)
	}

	logger.Debug().Str("path", cfgPath).Msg("loaded config file")
	return cfg, nil
}

// writeDefault marshals cfg and writes it to path, creating parent
// directories as needed.
func writeDefault(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create config directory")
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to marshal default config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to write default config")
	}
	return nil
}
