// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/layout"
)

// ComposeGrid writes a template-free document on A4 pages with images
// filled into g's cells column by column.
func ComposeGrid(ctx context.Context, paths []string, outPath string, g layout.Grid, logger *zap.Logger) (Result, error) {
	images, skipped := loadImages(paths, logger)
	result := Result{Skipped: skipped}
	if len(images) == 0 {
		return result, ErrNoImages
	}

	page := layout.A4
	var placements []Placement
	var pages int
	path, err := writeUnique(outPath, func(w io.Writer) error {
		var err error
		placements, pages, err = render(ctx, w, page, images, g.PerPage(), func(slot int, img layout.Size) layout.Rect {
			return g.Place(page, slot, img)
		})
		return err
	})
	if err != nil {
		return result, err
	}

	result.Path = path
	result.Pages = pages
	result.Placements = placements
	logger.Info("created: "+path, zap.Int("pages", pages), zap.Int("images", len(images)))
	return result, nil
}
