// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the Tokenmaster
// application using the Cobra library. It defines the root command, the
// persistent flags and the main entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/tokenmaster/buildvars"
	"github.com/toeirei/tokenmaster/client"
	"github.com/toeirei/tokenmaster/internal/config"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/db"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

var cfgFile string
var verbose bool

// appConfig is the configuration resolved by PersistentPreRunE.
var appConfig config.Config

// newAPIClient builds the backend client. Tests replace it.
var newAPIClient = func(cfg config.Config) core.TokenAPI {
	v, _, _ := resolveBuildVersion(nil)
	return client.New(client.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: "tokenmaster/" + v,
		Debug:     verbose,
	})
}

// runTUI starts the interactive UI. Tests replace it.
var runTUI = tui.Run

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Load optional config file argument from cli
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := logging.SetLevel(appConfig.Log.Level); err != nil {
		logging.Warnf("ignoring log level: %v", err)
	}
	if verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	if appConfig.Language == "" {
		appConfig.Language = i18n.DefaultLang
	}
	i18n.Init(appConfig.Language)
	if appConfig.Export.DefaultFilename == "" {
		appConfig.Export.DefaultFilename = core.DefaultExportFilename
	}

	logging.Debugf("api base url: %s, timeout: %s", appConfig.API.BaseURL, appConfig.API.Timeout)
	return nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

// ExitCode maps a command error to the process exit status: 2 for input
// rejected before any request, 1 for everything else.
func ExitCode(err error) int {
	if core.IsValidationError(err) || errors.Is(err, errEmptyProject) {
		return 2
	}
	return 1
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// saveLanguage persists a language chosen in the TUI.
func saveLanguage(lang string) error {
	appConfig.Language = lang
	if cfgFile != "" {
		return config.WriteConfigFileTo(&appConfig, cfgFile)
	}
	return config.WriteConfigFile(&appConfig, false)
}

// tuiLogFile places the TUI log next to the user config file.
func tuiLogFile() string {
	path, err := config.GetConfigPath(false)
	if err != nil {
		return filepath.Join(os.TempDir(), "tokenmaster.log")
	}
	return filepath.Join(filepath.Dir(path), "tokenmaster.log")
}

// requestContext bounds a CLI operation with the configured timeout.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if appConfig.API.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, appConfig.API.Timeout)
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "tokenmaster",
		Short:             "Tokenmaster manages API tokens stored by a token backend.",
		Long:              "Tokenmaster lists, adds, updates, deletes, imports and exports API tokens stored by a token backend.\n\nRunning without a subcommand will launch the interactive TUI.",
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(tui.Options{
				API:            newAPIClient(appConfig),
				Timeout:        appConfig.API.Timeout,
				ExportFilename: appConfig.Export.DefaultFilename,
				SaveLanguage:   saveLanguage,
				LogFile:        tuiLogFile(),
			})
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	defaults := client.NewDefaultConfig()
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logs, HTTP dumps)")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "", `UI language ("en", "ja")`)
	cmd.PersistentFlags().String("api.base_url", defaults.BaseURL, "Base URL of the token backend")
	cmd.PersistentFlags().Duration("api.timeout", defaults.Timeout, "Per-request timeout (0 disables it)")

	cmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newImportCmd(),
		newExportCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	localizeHelp(cmd)

	return cmd
}

// localizeHelp replaces command descriptions with translated ones. Help is
// rendered before PersistentPreRunE, so the language comes from the
// environment or the default.
func localizeHelp(root *cobra.Command) {
	lang := os.Getenv("TOKENMASTER_LANGUAGE")
	if lang == "" {
		lang = i18n.DefaultLang
	}
	i18n.Init(lang)
	root.Short = i18n.T("cli.short")
	root.Long = i18n.T("cli.long")
	for _, sub := range root.Commands() {
		key := "cli." + sub.Name() + ".short"
		if s := i18n.T(key); s != key {
			sub.Short = s
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Tokenmaster",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" && resolvedVersion == "dev" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't contain the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/tokenmaster" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}

// elapsed formats a duration for log lines.
func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
