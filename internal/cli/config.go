package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig is the on-disk configuration at
// ~/.config/regionviz/config.toml. All fields are optional; command-line
// flags override whatever is set here.
//
// Example:
//
//	[render]
//	label_mode = "simple"
//	only_simple_regions = true
//	format = "svg"
type fileConfig struct {
	Render renderConfig `toml:"render"`
}

type renderConfig struct {
	LabelMode         string `toml:"label_mode"`
	OnlySimpleRegions bool   `toml:"only_simple_regions"`
	Format            string `toml:"format"`
}

// loadConfig reads the config file if present. A missing file yields the
// zero config without error; a malformed file is an error so a typo does
// not silently fall back to defaults.
func loadConfig() (fileConfig, error) {
	var cfg fileConfig

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPath returns the config file location using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
