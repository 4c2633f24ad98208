// Config loading for the corkboard CLI.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyAddr      = "addr"
	cfgKeyLogFormat = "log_format"
	cfgKeyLogLevel  = "log_level"

	// Defaults.
	defaultAddr      = ":8080"
	defaultLogFormat = "text"
	defaultLogLevel  = "info"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Corkboard configuration

# Listen address for the HTTP server
addr: ":8080"

# Log output format: text or json
log_format: text

# Minimum log level: debug, info, warn, error
log_level: info
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyAddr, defaultAddr)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// newLogger builds the process logger from the loaded config.
func newLogger(v *viper.Viper) *slog.Logger {
	var level slog.Level
	switch v.GetString(cfgKeyLogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if v.GetString(cfgKeyLogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
