// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package copier

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps a base name (file name minus extension) to the matching file
// names of one directory, in sorted order.
type Index map[string][]string

// BuildIndex lists dir once. Subdirectories are ignored.
func BuildIndex(dir string) (Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	ix := make(Index, len(names))
	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		ix[base] = append(ix[base], name)
	}
	return ix, nil
}

// Lookup returns the first file whose base name is base.
func (ix Index) Lookup(base string) (string, bool) {
	files := ix[base]
	if len(files) == 0 {
		return "", false
	}
	return files[0], true
}

// LookupPreferred is Lookup restricted to files accepted by keep, trying
// the extensions in prefer first (case-insensitive, with the dot).
func (ix Index) LookupPreferred(base string, keep func(string) bool, prefer ...string) (string, bool) {
	var candidates []string
	for _, f := range ix[base] {
		if keep == nil || keep(f) {
			candidates = append(candidates, f)
		}
	}
	for _, ext := range prefer {
		for _, f := range candidates {
			if strings.EqualFold(filepath.Ext(f), ext) {
				return f, true
			}
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0], true
}
