// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Tokenmaster.
//
// Usage:
//
//	go run . [flags]
//	./tokenmaster [flags]
//
// Without a subcommand this launches the interactive UI. See --help for
// the list, add, update, delete, import, export and serve commands.
package main

import (
	"os"

	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("tokenmaster: %v", err)
		os.Exit(cli.ExitCode(err))
	}
}
