// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toeirei/tokenmaster/internal/i18n"
	"golang.org/x/term"
)

// isTerminal reports whether stdin is interactive. Tests replace it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptForConfirmation prints prompt and returns the lowercased answer.
func promptForConfirmation(in io.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	answer, _ := reader.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(answer))
}

// promptForFilename asks for a file name, offering def. An empty answer
// accepts def. ok is false when input ended before a line was read.
func promptForFilename(in io.Reader, out io.Writer, def string) (name string, ok bool) {
	fmt.Fprint(out, i18n.T("cli.export.prompt", def))
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return "", false
	}
	name = strings.TrimSpace(line)
	if name == "" {
		name = def
	}
	return name, true
}
