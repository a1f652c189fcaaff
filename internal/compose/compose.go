// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose lays images out on PDF pages and merges each page onto
// the first page of a template PDF. The overlay is rendered in memory with
// gofpdf; pdfcpu then stamps the template behind every overlay page.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/imageprep"
	"github.com/pdiddy/notepacket/internal/layout"
	pkgtypes "github.com/pdiddy/notepacket/pkg/types"
)

var (
	// ErrTemplate is returned when the template PDF is missing or unreadable.
	ErrTemplate = errors.New("invalid template")

	// ErrNoImages is returned when nothing is left to place on a page.
	ErrNoImages = errors.New("no images to compose")
)

// templateStamp places the template page at its natural size, centered,
// underneath the page content.
const templateStamp = "scalefactor:1 abs, rotation:0, opacity:1"

func init() {
	// Use pdfcpu's built-in defaults instead of a per-user config directory.
	api.DisableConfigDir()
}

// Placement records where one image was drawn. Rect is in PDF coordinates.
type Placement struct {
	Page int
	Slot int
	Path string
	Rect layout.Rect
}

// Result describes one written document.
type Result struct {
	Path       string
	Pages      int
	Placements []Placement

	// Skipped lists images that could not be read or decoded.
	Skipped []string
}

// Composer renders two-slot pages on top of a template.
type Composer struct {
	template string
	page     layout.Size
	layout   pkgtypes.Layout
	conf     *model.Configuration
	logger   *zap.Logger
}

// New validates the template and returns a composer using its first page
// size. A template whose size cannot be read falls back to A4.
func New(templatePath string, l pkgtypes.Layout, logger *zap.Logger) (*Composer, error) {
	if strings.TrimSpace(templatePath) == "" {
		return nil, fmt.Errorf("%w: no template configured", ErrTemplate)
	}
	info, err := os.Stat(templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrTemplate, templatePath)
	}

	conf := model.NewDefaultConfiguration()
	n, err := api.PageCountFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrTemplate, filepath.Base(templatePath), err)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrTemplate, filepath.Base(templatePath))
	}

	page := layout.A4
	if dims, err := api.PageDimsFile(templatePath); err == nil && len(dims) > 0 && dims[0].Width > 0 && dims[0].Height > 0 {
		page = layout.Size{W: dims[0].Width, H: dims[0].Height}
	} else {
		logger.Warn("template size unknown, using A4", zap.String("template", templatePath))
	}

	c := &Composer{template: templatePath, page: page, layout: l, conf: conf, logger: logger}
	if _, err := c.watermark(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return c, nil
}

// PageSize returns the page size taken from the template.
func (c *Composer) PageSize() layout.Size { return c.page }

// Compose places the images two per page, stamps the template behind each
// page, and writes the result to a unique path derived from outPath.
// Unreadable images are logged and skipped. When none survive, nothing is
// written and ErrNoImages is returned.
func (c *Composer) Compose(ctx context.Context, paths []string, outPath string) (Result, error) {
	images, skipped := loadImages(paths, c.logger)
	result := Result{Skipped: skipped}
	if len(images) == 0 {
		return result, ErrNoImages
	}

	var overlay bytes.Buffer
	placements, pages, err := render(ctx, &overlay, c.page, images, layout.SlotsPerPage, func(slot int, img layout.Size) layout.Rect {
		return layout.Place(c.page, c.layout, slot, img)
	})
	if err != nil {
		return result, err
	}

	wm, err := c.watermark()
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	path, err := writeUnique(outPath, func(w io.Writer) error {
		if err := api.AddWatermarks(bytes.NewReader(overlay.Bytes()), w, nil, wm, c.conf); err != nil {
			return fmt.Errorf("merging template: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	result.Path = path
	result.Pages = pages
	result.Placements = placements
	c.logger.Info("created: "+path, zap.Int("pages", pages), zap.Int("images", len(images)))
	return result, nil
}

// watermark builds a fresh background stamp from the template's first page.
func (c *Composer) watermark() (*model.Watermark, error) {
	wm, err := api.PDFWatermark(c.template+":1", templateStamp, false, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("loading template page: %w", err)
	}
	return wm, nil
}

// loadImages decodes every path, logging and collecting the ones that fail.
func loadImages(paths []string, logger *zap.Logger) ([]*imageprep.Image, []string) {
	var images []*imageprep.Image
	var skipped []string
	for _, p := range paths {
		img, err := imageprep.Load(p)
		if err != nil {
			logger.Warn("skipped image: "+filepath.Base(p), zap.String("path", p), zap.Error(err))
			skipped = append(skipped, p)
			continue
		}
		images = append(images, img)
	}
	return images, skipped
}

// render draws images perPage at a time onto pages of the given size and
// writes the PDF to w. place maps a slot index and pixel size to a rectangle
// in PDF coordinates.
func render(ctx context.Context, w io.Writer, page layout.Size, images []*imageprep.Image, perPage int,
	place func(slot int, img layout.Size) layout.Rect) ([]Placement, int, error) {

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.W, Ht: page.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	var placements []Placement
	groups := layout.Chunk(images, perPage)
	for pageIdx, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		pdf.AddPage()
		for slot, img := range group {
			name := "img" + strconv.Itoa(pageIdx*perPage+slot)
			opts := gofpdf.ImageOptions{ImageType: img.Type}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))

			r := place(slot, img.Size())
			tl := r.TopLeft(page)
			pdf.ImageOptions(name, tl.X, tl.Y, tl.W, tl.H, false, opts, 0, "")
			placements = append(placements, Placement{Page: pageIdx + 1, Slot: slot, Path: img.Path, Rect: r})
		}
		if err := pdf.Error(); err != nil {
			return nil, 0, fmt.Errorf("rendering page %d: %w", pageIdx+1, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return nil, 0, fmt.Errorf("writing PDF: %w", err)
	}
	return placements, len(groups), nil
}

// UniquePath returns path if nothing exists there, otherwise the first of
// name_1.ext, name_2.ext, ... that is free.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := stem + "_" + strconv.Itoa(i) + ext
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// writeUnique picks a free name next to path and fills it through a temp
// file, so a failed write leaves nothing behind.
func writeUnique(path string, fill func(io.Writer) error) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".compose-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fillErr := fill(tmp)
	closeErr := tmp.Close()
	if fillErr != nil {
		os.Remove(tmpPath)
		return "", fillErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	final := UniquePath(path)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return final, nil
}
