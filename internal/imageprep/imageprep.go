// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imageprep decodes source images and normalizes them into the two
// encodings the PDF renderer embeds: JPEG bytes pass through unchanged,
// everything else (PNG, GIF, BMP) is redrawn as 8-bit RGBA PNG.
package imageprep

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/bmatcuk/doublestar/v4"
	_ "golang.org/x/image/bmp"

	"github.com/pdiddy/notepacket/internal/layout"
)

// Pattern matches the file names treated as images (lower-cased first).
const Pattern = "*.{png,jpg,jpeg,bmp,gif}"

// Renderer image types understood by gofpdf.
const (
	TypeJPEG = "JPG"
	TypePNG  = "PNG"
)

// Image is a decoded, renderer-ready image.
type Image struct {
	// Path is the source file.
	Path string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// Type is TypeJPEG or TypePNG and describes Data.
	Type string

	// Data holds the bytes to embed.
	Data []byte
}

// Size returns the pixel dimensions as a layout size.
func (img *Image) Size() layout.Size {
	return layout.Size{W: float64(img.Width), H: float64(img.Height)}
}

// IsImage reports whether name has one of the supported image extensions,
// ignoring case.
func IsImage(name string) bool {
	ok, err := doublestar.Match(Pattern, strings.ToLower(filepath.Base(name)))
	return err == nil && ok
}

// Load reads and fully decodes the file at path. Decoding the whole image
// up front means a broken file is rejected here instead of failing midway
// through a PDF page.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return Decode(path, data)
}

// Decode is Load for bytes already in memory. path is informational.
func Decode(path string, data []byte) (*Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decoding %s: empty image", filepath.Base(path))
	}

	img := &Image{Path: path, Width: b.Dx(), Height: b.Dy()}
	if format == "jpeg" {
		img.Type = TypeJPEG
		img.Data = data
		return img, nil
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("re-encoding %s: %w", filepath.Base(path), err)
	}
	img.Type = TypePNG
	img.Data = buf.Bytes()
	return img, nil
}
