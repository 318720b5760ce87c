// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads gpgkeys settings from defaults, gpgkeys.yaml, GPGKEYS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Language string        `mapstructure:"language" yaml:"language"`
	Format   string        `mapstructure:"format" yaml:"format"`
	Verbose  bool          `mapstructure:"verbose" yaml:"verbose,omitempty"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Log      struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
	Gpg struct {
		Binary    string   `mapstructure:"binary" yaml:"binary"`
		HomeDir   string   `mapstructure:"homedir" yaml:"homedir,omitempty"`
		ExtraArgs []string `mapstructure:"extra_args" yaml:"extra_args,omitempty"`
	} `mapstructure:"gpg" yaml:"gpg"`
}

// Defaults returns the built-in defaults keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"language":   "en",
		"format":     "text",
		"timeout":    30 * time.Second,
		"log.level":  "info",
		"gpg.binary": "gpg",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "gpgkeys")
		default:
			configDir = "/etc/gpgkeys"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "gpgkeys")
	}

	return filepath.Join(configDir, "gpgkeys.yaml"), nil
}

// LoadConfig layers defaults, the first gpgkeys.yaml found (or configFile when
// given), GPGKEYS_* variables and the flags of cmd into a T. A missing config
// file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("gpgkeys")
	v.SetConfigType("yaml")

	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("gpgkeys")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}

	return c, nil
}

// WriteConfigFile writes c as YAML to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
