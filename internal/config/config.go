// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and writes tokenmaster.yaml.
package config

import (
	"errors"
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

const (
	appName    = "tokenmaster"
	configName = "tokenmaster"
	envPrefix  = "tokenmaster"
)

// Config is the full application configuration.
type Config struct {
	API      APIConfig    `mapstructure:"api" yaml:"api"`
	Language string       `mapstructure:"language" yaml:"language"`
	Export   ExportConfig `mapstructure:"export" yaml:"export"`
	Server   ServerConfig `mapstructure:"server" yaml:"server"`
	Log      LogConfig    `mapstructure:"log" yaml:"log"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Timeout of zero disables the per-request deadline.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type ExportConfig struct {
	DefaultFilename string `mapstructure:"default_filename" yaml:"default_filename"`
}

type ServerConfig struct {
	Addr           string      `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string    `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	MaxUploadBytes int64       `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	Store          StoreConfig `mapstructure:"store" yaml:"store"`
}

type StoreConfig struct {
	// Type is one of csv, sqlite, postgres or mysql.
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the default value of every key, in viper key form.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":            "http://localhost:8080",
		"api.timeout":             30 * time.Second,
		"language":                "en",
		"export.default_filename": "tokens.csv",
		"server.addr":             ":8080",
		"server.allowed_origins":  []string{"*"},
		"server.max_upload_bytes": int64(10 << 20),
		"server.store.type":       "csv",
		"server.store.dsn":        "./tokens.csv",
		"log.level":               "info",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Tokenmaster")
		default: // Linux, macOS, etc.
			configDir = "/etc/" + appName
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, appName)
	}

	return filepath.Join(configDir, configName+".yaml"), nil
}

// LoadConfig resolves defaults, the config file, TOKENMASTER_* environment
// variables and the command's flags, in increasing precedence. A missing
// config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configPath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	// 3. Explicit config file path from --config.
	if configPath != nil && *configPath != "" {
		v.SetConfigFile(*configPath)
	}

	// 4. Standard config locations
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	// 5. Read in the primary config file.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 6. Environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 7. Command line flags
	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to parse config: %w", err)
	}

	return c, nil
}

// WriteConfigFile writes c as YAML to the user or system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
