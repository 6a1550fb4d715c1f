// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer verifies the package helper functions write
// formatted messages to the package-level logger `L`. The test swaps `L` with
// a buffer-backed logger and restores it afterwards.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	if !strings.Contains(out, "hello dbg") {
		t.Fatalf("missing debug output; got: %s", out)
	}
	if !strings.Contains(out, "info 1") {
		t.Fatalf("missing info output; got: %s", out)
	}
	if !strings.Contains(out, "warn") {
		t.Fatalf("missing warn output; got: %s", out)
	}
	if !strings.Contains(out, "err E") {
		t.Fatalf("missing error output; got: %s", out)
	}
}

func TestSetLevel(t *testing.T) {
	prev := L.GetLevel()
	defer L.SetLevel(prev)

	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if L.GetLevel() != clog.WarnLevel {
		t.Fatalf("expected warn level, got %v", L.GetLevel())
	}
	if err := SetLevel(""); err != nil {
		t.Fatalf("empty level should be ignored: %v", err)
	}
	if L.GetLevel() != clog.WarnLevel {
		t.Fatalf("empty level must keep the current one")
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSetDebug(t *testing.T) {
	prev := L.GetLevel()
	defer L.SetLevel(prev)

	SetDebug(true)
	if L.GetLevel() != clog.DebugLevel {
		t.Fatalf("expected debug level")
	}
	SetDebug(false)
	if L.GetLevel() != clog.InfoLevel {
		t.Fatalf("expected info level")
	}
}

func TestLogToFile(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	defer func() { L = prev }()

	path := filepath.Join(t.TempDir(), "logs", "tm.log")
	f, err := LogToFile(path)
	if err != nil {
		t.Fatalf("LogToFile: %v", err)
	}
	Infof("to file %d", 7)
	_ = f.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "to file 7") {
		t.Fatalf("log file missing entry: %s", b)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should reach the old output")
	}
}
