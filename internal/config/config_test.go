// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	cfg "github.com/toeirei/tokenmaster/internal/config"
)

// isolate points the user config dir and working directory at a temp dir so
// no real tokenmaster.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base url %q", c.API.BaseURL)
	}
	if c.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", c.API.Timeout)
	}
	if c.Export.DefaultFilename != "tokens.csv" {
		t.Fatalf("unexpected export filename %q", c.Export.DefaultFilename)
	}
	if c.Server.Store.Type != "csv" || c.Server.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected server defaults %+v", c.Server)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "api:\n  base_url: http://api.internal:9000\n  timeout: 5s\nlanguage: ja\nserver:\n  store:\n    type: sqlite\n    dsn: file:tokens.db\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.API.BaseURL != "http://api.internal:9000" || c.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected api config %+v", c.API)
	}
	if c.Language != "ja" {
		t.Fatalf("unexpected language %q", c.Language)
	}
	if c.Server.Store.Type != "sqlite" || c.Server.Store.Dsn != "file:tokens.db" {
		t.Fatalf("unexpected store %+v", c.Server.Store)
	}
	if c.Export.DefaultFilename != "tokens.csv" {
		t.Fatalf("defaults must fill keys missing from the file")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte("api:\n  base_url: http://from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TOKENMASTER_API_BASE_URL", "http://from-env")

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.API.BaseURL != "http://from-env" {
		t.Fatalf("env should win, got %q", c.API.BaseURL)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TOKENMASTER_API_BASE_URL", "http://from-env")

	cmd := &cobra.Command{}
	cmd.Flags().String("api.base_url", "", "")
	if err := cmd.Flags().Set("api.base_url", "http://from-flag"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.API.BaseURL != "http://from-flag" {
		t.Fatalf("flag should win, got %q", c.API.BaseURL)
	}
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	tmp := isolate(t)
	missing := filepath.Join(tmp, "nope.yaml")
	if _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &missing); err == nil {
		t.Fatalf("expected error for a missing explicit config file")
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	tmp := isolate(t)

	c := cfg.Config{}
	c.API.BaseURL = "http://written"
	c.API.Timeout = 12 * time.Second
	c.Language = "ja"
	c.Server.Store.Type = "csv"

	path := filepath.Join(tmp, "out", "tokenmaster.yaml")
	if err := cfg.WriteConfigFileTo(&c, path); err != nil {
		t.Fatalf("WriteConfigFileTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.API.BaseURL != "http://written" || got.API.Timeout != 12*time.Second || got.Language != "ja" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestWriteConfigFile_UserPath(t *testing.T) {
	isolate(t)

	c := cfg.Config{Language: "en"}
	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if filepath.Base(path) != "tokenmaster.yaml" {
		t.Fatalf("unexpected config file name %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
}
