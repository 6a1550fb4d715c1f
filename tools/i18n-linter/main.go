// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation catalogs against the source tree. It
// reports keys the code uses but the primary locale lacks, keys another
// locale lacks, and keys nothing references.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// dynamicKeys match keys built at runtime, e.g. "field."+name. A key that
// matches one of them is never reported as orphaned.
var dynamicKeys = []*regexp.Regexp{
	regexp.MustCompile(`^field\.[A-Za-z]+$`),
	regexp.MustCompile(`^cli\.[a-z]+\.short$`),
}

// keyLiteral matches quoted strings shaped like translation keys.
var keyLiteral = regexp.MustCompile(`"([a-z]+(?:\.[A-Za-z_]+)+)"`)

// report is the result of one lint run.
type report struct {
	Undefined []string            // used in code, absent from the primary locale
	Missing   map[string][]string // locale file -> keys absent from it
	Orphaned  []string            // in the primary locale, referenced nowhere
}

func (r report) failed() bool {
	if len(r.Undefined) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	fmt.Println("🔍 Running i18n linter...")
	r, err := lint(projectRoot, localesDir, primaryLocale)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, dir, primary string) (report, error) {
	r := report{Missing: map[string][]string{}}

	primaryKeys, err := loadKeysFromLocale(filepath.Join(dir, primary))
	if err != nil {
		return r, fmt.Errorf("loading primary locale %s: %w", primary, err)
	}
	used, err := findUsedKeys(root, primaryKeys)
	if err != nil {
		return r, fmt.Errorf("scanning sources: %w", err)
	}

	for key := range used {
		if _, ok := primaryKeys[key]; !ok {
			r.Undefined = append(r.Undefined, key)
		}
	}
	for key := range primaryKeys {
		if _, ok := used[key]; ok || isDynamic(key) {
			continue
		}
		r.Orphaned = append(r.Orphaned, key)
	}
	sort.Strings(r.Undefined)
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primary {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("loading %s: %w", file, err)
		}
		var missing []string
		for key := range primaryKeys {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		r.Missing[filepath.Base(file)] = missing
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	section := func(title string, keys []string, label string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(keys) == 0 {
			fmt.Fprintln(w, "  ✨ None found.")
		}
		for _, k := range keys {
			fmt.Fprintf(w, "  - %s: %s\n", label, k)
		}
		fmt.Fprintln(w)
	}

	section("Keys used in code but not defined", r.Undefined, "Undefined")

	locales := make([]string, 0, len(r.Missing))
	for name := range r.Missing {
		locales = append(locales, name)
	}
	sort.Strings(locales)
	for _, name := range locales {
		section("Missing keys in "+name, r.Missing[name], "Missing")
	}

	section("Orphaned keys", r.Orphaned, "Orphaned")

	switch {
	case r.failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}

func isDynamic(key string) bool {
	for _, re := range dynamicKeys {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// findUsedKeys collects every key-shaped string literal in non-test Go
// files under root. Literals that are not known keys only count when they
// appear as the first argument of i18n.T, so that import paths and similar
// dotted strings are not taken for keys.
func findUsedKeys(root string, known map[string]struct{}) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	callRe := regexp.MustCompile(`i18n\.T\("([^"]+)"\s*[,)]`)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range callRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		for _, m := range keyLiteral.FindAllStringSubmatch(string(content), -1) {
			if _, ok := known[m[1]]; ok {
				keys[m[1]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into dot-separated keys. Flat catalogs
// with dotted keys pass through unchanged.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			newPrefix := k
			if prefix != "" {
				newPrefix = prefix + "." + k
			}
			flattenYAML(newPrefix, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
