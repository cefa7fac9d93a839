// Package paths provides centralized path handling for mksls.
// It implements XDG Base Directory specification compliance so the
// config file, the default backup directory and the log file land in
// predictable places.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for mksls
	EnvConfigDir = "MKSLS_CONFIG_DIR"

	// EnvBackupDir overrides the default backup directory
	EnvBackupDir = "MKSLS_BACKUP_DIR"
)

// Directory and file names
const (
	// AppDirName is the directory name for mksls-specific files
	AppDirName = "mksls"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "mksls.toml"

	// BackupsDirName is the subdirectory for backed up files
	BackupsDirName = "backups"

	// DefaultSpecFileName is the base name looked for when scanning
	// unless overridden by flag or config
	DefaultSpecFileName = "sls"
)

// Paths resolves the directories and files mksls uses
type Paths struct {
	configDir string
}

// New creates a Paths instance. The config directory comes from
// MKSLS_CONFIG_DIR when set, otherwise from the XDG config home.
func New() *Paths {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	return &Paths{configDir: configDir}
}

// ConfigDir returns the directory holding the config file and, by
// default, the backup directory.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the path of the TOML configuration file.
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// BackupDir returns the default directory backed up files are moved
// into. MKSLS_BACKUP_DIR takes precedence when set.
func (p *Paths) BackupDir() string {
	if dir := os.Getenv(EnvBackupDir); dir != "" {
		return dir
	}
	return filepath.Join(p.configDir, BackupsDirName)
}
