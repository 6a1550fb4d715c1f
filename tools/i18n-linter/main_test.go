// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFlattenYAML(t *testing.T) {
	m := map[string]interface{}{
		"top": map[string]interface{}{
			"sub": "value",
			"arr": []interface{}{"one", "two"},
		},
		"menu.add": "Add token",
	}
	keys := make(map[string]struct{})
	flattenYAML("", m, keys)
	for _, want := range []string{"top.sub", "top.arr[0]", "menu.add"} {
		if _, ok := keys[want]; !ok {
			t.Fatalf("expected %s in keys, got %v", want, keys)
		}
	}
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	locales := filepath.Join(dir, "locales")
	writeFile(t, filepath.Join(locales, "en.yaml"), "menu.add: \"Add\"\nmenu.old: \"Old\"\nfield.token: \"Token\"\nlist.col.row: \"#\"\n")
	writeFile(t, filepath.Join(locales, "ja.yaml"), "menu.add: \"追加\"\nfield.token: \"トークン\"\nlist.col.row: \"#\"\n")
	writeFile(t, filepath.Join(dir, "app", "a.go"), `package app

var cols = []string{"list.col.row"}

func f() {
	_ = i18n.T("menu.add")
	_ = i18n.T("menu.gone")
	_ = "github.com/example/pkg"
}
`)
	// Sources under tools and underscore dirs are not scanned.
	writeFile(t, filepath.Join(dir, "_ignored", "b.go"), `package b
func g() { _ = i18n.T("never.defined") }
`)

	r, err := lint(dir, locales, "en.yaml")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(r.Undefined) != 1 || r.Undefined[0] != "menu.gone" {
		t.Fatalf("unexpected undefined keys %v", r.Undefined)
	}
	if len(r.Orphaned) != 1 || r.Orphaned[0] != "menu.old" {
		t.Fatalf("unexpected orphaned keys %v", r.Orphaned)
	}
	if got := r.Missing["ja.yaml"]; len(got) != 1 || got[0] != "menu.old" {
		t.Fatalf("unexpected missing keys %v", got)
	}
	if !r.failed() {
		t.Fatalf("report with undefined keys must fail")
	}

	var out bytes.Buffer
	printReport(&out, r)
	if !strings.Contains(out.String(), "Undefined: menu.gone") {
		t.Fatalf("report lacks undefined key: %q", out.String())
	}
}

func TestLint_RepositoryCatalogs(t *testing.T) {
	root := filepath.Join("..", "..")
	r, err := lint(root, filepath.Join(root, localesDir), primaryLocale)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if r.failed() {
		var out bytes.Buffer
		printReport(&out, r)
		t.Fatalf("catalogs inconsistent:\n%s", out.String())
	}
}
