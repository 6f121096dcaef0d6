// Config loading for the logbook CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

const (
	configName = ".logbook"

	// Config keys.
	cfgKeyDatabase    = "database"
	cfgKeyBusyTimeout = "busy_timeout_ms"

	// envPrefix makes LOGBOOK_DATABASE and LOGBOOK_BUSY_TIMEOUT_MS work.
	envPrefix = "LOGBOOK"
)

// loadConfig resolves the store configuration from, in order of
// precedence: the --config file, .logbook.yaml in the working directory,
// ~/.logbook/config.yaml, and LOGBOOK_* environment variables. The
// database path has no default: startup fails with a clear error when it
// is absent, rather than silently creating a database somewhere
// surprising.
func loadConfig(path string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBusyTimeout, types.DefaultBusyTimeoutMS)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if err := readFirstConfig(v); err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		DatabasePath:  v.GetString(cfgKeyDatabase),
		BusyTimeoutMS: v.GetInt(cfgKeyBusyTimeout),
	}

	if cfg.DatabasePath == "" {
		return types.Config{}, fmt.Errorf("%w: set LOGBOOK_DATABASE or the database key in %s.yaml",
			types.ErrDatabasePathEmpty, configName)
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// readFirstConfig loads the first config file that exists: .logbook.yaml
// in the working directory, then config.yaml under ~/.logbook. Checked
// explicitly, one file at a time, so the working-directory file is found
// even when a home directory resolves. No file at all is not an error;
// environment variables may carry everything needed.
func readFirstConfig(v *viper.Viper) error {
	candidates := []string{configName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".logbook", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}
	return nil
}
