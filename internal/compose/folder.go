// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/copier"
	"github.com/pdiddy/notepacket/internal/layout"
)

// FolderFile is the document name written into a composed folder.
const FolderFile = "images.pdf"

// FolderOptions selects how a folder document is laid out.
type FolderOptions struct {
	// Grid switches to the template-free 2x3 grid.
	Grid bool

	// Composer is required unless Grid is set.
	Composer *Composer
}

// ComposeFolder collects the images in dir in natural order and writes
// them to images.pdf (or the next free name) in the same folder.
func ComposeFolder(ctx context.Context, dir string, opts FolderOptions, logger *zap.Logger) (Result, error) {
	paths, err := copier.ListImages(dir)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		return Result{}, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}

	out := filepath.Join(dir, FolderFile)
	if opts.Grid {
		return ComposeGrid(ctx, paths, out, layout.DefaultGrid, logger)
	}
	if opts.Composer == nil {
		return Result{}, fmt.Errorf("%w: no template configured", ErrTemplate)
	}
	return opts.Composer.Compose(ctx, paths, out)
}
