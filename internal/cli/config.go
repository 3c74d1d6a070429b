package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// Root is the cgroup hierarchy mount point.
	Root string `json:"root"`
	// SnapshotDir is where unqualified snapshot output files land.
	SnapshotDir string `json:"snapshot_dir,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Root: "/sys/fs/cgroup",
	}
}

// getConfigPath returns the path to the user config file.
// Uses $XDG_CONFIG_HOME/cgctl/config.json if set, otherwise
// ~/.config/cgctl/config.json. Returns empty string if the home directory
// cannot be determined.
func getConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "cgctl", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "cgctl", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest
// wins): defaults, user config file, explicit config file via configPath,
// CLI overrides applied by the caller.
//
// Config files are HuJSON: JSON with comments and trailing commas allowed.
func LoadConfig(configPath string, env map[string]string) (Config, error) {
	cfg := DefaultConfig()

	userPath := getConfigPath(env)
	if userPath != "" {
		loaded, found, err := readConfigFile(userPath)
		if err != nil {
			return Config{}, err
		}

		if found {
			cfg = mergeConfig(cfg, loaded)
		}
	}

	if configPath != "" {
		loaded, found, err := readConfigFile(configPath)
		if err != nil {
			return Config{}, err
		}

		if !found {
			return Config{}, fmt.Errorf("config file not found: %s", configPath)
		}

		cfg = mergeConfig(cfg, loaded)
	}

	return cfg, nil
}

func readConfigFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, true, nil
}

func mergeConfig(base, override Config) Config {
	if override.Root != "" {
		base.Root = override.Root
	}

	if override.SnapshotDir != "" {
		base.SnapshotDir = override.SnapshotDir
	}

	return base
}
