// Package config holds the settings shared by the vcsave tools.
//
// Settings come from a TOML file (see DefaultPath), then from environment
// variables, then from command-line options (applied by each tool).
//
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Environment variables that override the config file.
const (
	EnvDebug           = "VCSAVE_DEBUG"
	EnvSavesDir        = "VCSAVE_SAVES_DIR"
	EnvCompressBackups = "VCSAVE_COMPRESS_BACKUPS"
)

type Config struct {
	SavesDir        string `toml:"saves_dir"`        // Where the game keeps GTAVCsf<N>.b files
	BackupSuffix    string `toml:"backup_suffix"`    // Appended to a save's path to name its backup
	CompressBackups bool   `toml:"compress_backups"` // Write LZ4-compressed backups
	AssumeYes       bool   `toml:"assume_yes"`       // Convert without asking
	LogLevel        string `toml:"log_level"`        // A logrus level name
}

func Default() *Config {
	return &Config{
		SavesDir:     defaultSavesDir(),
		BackupSuffix: ".bak",
		LogLevel:     "warning",
	}
}

// defaultSavesDir is where the PC game puts its user files.
func defaultSavesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents", "GTA Vice City User Files")
}

// DefaultPath returns $XDG_CONFIG_HOME/vcsave-tools/config.toml, or the
// equivalent under ~/.config.
//
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vcsave-tools", "config.toml")
}

// Load reads a config file over the defaults, then applies any environment
// overrides.  A missing file is not an error; an unreadable or malformed one
// is.  An empty path means the defaults plus environment.
//
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config file %q", path)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config file %q", path)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if os.Getenv(EnvDebug) != "" {
		c.LogLevel = "debug"
	}
	if dir := os.Getenv(EnvSavesDir); dir != "" {
		c.SavesDir = dir
	}
	if v := os.Getenv(EnvCompressBackups); v != "" {
		compress, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "bad %s value %q", EnvCompressBackups, v)
		}
		c.CompressBackups = compress
	}
	return nil
}
