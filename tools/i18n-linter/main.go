// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks translation keys. It scans the Go sources for i18n.T()
// calls and compares them with the YAML locale files: keys used in code but
// missing from a locale fail the run, keys never used are reported.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toeirei/gpgkeys/util/slicest"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var keyCallRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

func main() {
	fmt.Println("Running i18n linter...")

	used, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("Error finding used keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d translation keys used in source code.\n", len(used))

	report, err := lint(used, localesDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	for _, line := range report.Lines() {
		fmt.Println(line)
	}
	if report.Failed() {
		os.Exit(1)
	}
	fmt.Println("All translation files are consistent.")
}

// Report lists problems per locale file.
type Report struct {
	// Missing maps a locale file to keys used in code but absent there.
	Missing map[string][]string
	// Orphaned are primary locale keys no code refers to.
	Orphaned []string
}

// Failed reports whether any locale misses a key.
func (r Report) Failed() bool {
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

// Lines renders the report for the terminal.
func (r Report) Lines() []string {
	var out []string
	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		for _, k := range r.Missing[f] {
			out = append(out, fmt.Sprintf("  - Missing in %s: %s", f, k))
		}
	}
	out = append(out, slicest.Map(r.Orphaned, func(k string) string { return "  - Orphaned: " + k })...)
	return out
}

func lint(used map[string]struct{}, dir string) (Report, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return Report{}, err
	}
	report := Report{Missing: map[string][]string{}}
	for _, file := range files {
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return Report{}, fmt.Errorf("load %s: %w", file, err)
		}
		name := filepath.Base(file)
		report.Missing[name] = sortedKeys(used, func(k string) bool { _, ok := keys[k]; return !ok })
		if name == primaryLocale {
			report.Orphaned = sortedKeys(keys, func(k string) bool { _, ok := used[k]; return !ok })
		}
	}
	return report, nil
}

func sortedKeys(m map[string]struct{}, keep func(string) bool) []string {
	all := make([]string, 0, len(m))
	for k := range m {
		all = append(all, k)
	}
	out := slicest.Filter(all, keep)
	sort.Strings(out)
	return out
}

// findUsedKeys scans non-test .go files for i18n.T("key") calls.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && (info.Name() == "tools" || strings.HasPrefix(info.Name(), "_")) {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyCallRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads the flat key set of one locale file.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(raw))
	for k := range raw {
		keys[k] = struct{}{}
	}
	return keys, nil
}
