// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package copier

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/pdiddy/notepacket/internal/imageprep"
)

// List returns the names of the regular files in dir, naturally sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool { return NaturalLess(names[i], names[j]) })
	return names, nil
}

// ListImages returns the full paths of the image files in dir, naturally
// sorted so that 2.png comes before 10.png.
func ListImages(dir string) ([]string, error) {
	names, err := List(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, n := range names {
		if imageprep.IsImage(n) {
			paths = append(paths, filepath.Join(dir, n))
		}
	}
	return paths, nil
}

// NaturalLess orders names the way people read them: runs of digits
// compare by value and letters ignore case. Names that tie compare bytewise.
func NaturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if natural.Less(la, lb) {
		return true
	}
	if natural.Less(lb, la) {
		return false
	}
	return a < b
}
