package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"
	"github.com/vercheck-labs/vercheck/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyCatalog      = "catalog"
	KeyHTTPTimeout  = "http_timeout"
	KeyUserAgent    = "user_agent"
	KeyCheckTimeout = "check_timeout"
	KeyShell        = "shell"
)

// Keys lists every key accepted by Set, in display order.
var Keys = []string{KeyCatalog, KeyHTTPTimeout, KeyUserAgent, KeyCheckTimeout, KeyShell}

var defaults = map[string]string{
	KeyHTTPTimeout:  "0s",
	KeyCheckTimeout: "30s",
}

// Dir returns the path to the config directory (~/.vercheck/).
// VERCHECK_HOME overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.vercheck/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Duration returns a duration-valued key. Unparseable values read as zero.
func Duration(key string) time.Duration {
	return viper.GetDuration(key)
}

// IsKnown reports whether key is a recognised configuration key.
func IsKnown(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
	if _, ok := defaults[key]; ok {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", key, err)
		}
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
