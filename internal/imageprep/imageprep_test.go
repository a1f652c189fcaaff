// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imageprep

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestIsImage(t *testing.T) {
	for name, want := range map[string]bool{
		"1.jpg":          true,
		"scan.JPEG":      true,
		"dir/photo.Png":  true,
		"anim.gif":       true,
		"old.bmp":        true,
		"notes.pdf":      false,
		"README":         false,
		"archive.jpg.gz": false,
	} {
		assert.Equal(t, want, IsImage(name), name)
	}
}

func TestDecodeJPEGPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(40, 30), nil))

	img, err := Decode("a.jpg", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, TypeJPEG, img.Type)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 30, img.Height)
	assert.Equal(t, buf.Bytes(), img.Data)
}

func TestDecodeNormalizesToPNG(t *testing.T) {
	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, testImage(20, 10)) }},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, testImage(20, 10), nil) }},
		{"png16", func(b *bytes.Buffer) error {
			img := image.NewRGBA64(image.Rect(0, 0, 20, 10))
			return png.Encode(b, img)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf))

			img, err := Decode(tt.name, buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, TypePNG, img.Type)
			assert.Equal(t, 20, img.Width)
			assert.Equal(t, 10, img.Height)

			cfg, err := png.DecodeConfig(bytes.NewReader(img.Data))
			require.NoError(t, err)
			assert.Contains(t, []color.Model{color.RGBAModel, color.NRGBAModel}, cfg.ColorModel,
				"expected an 8-bit truecolor PNG")
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "bad.jpg")
}

func TestImageSize(t *testing.T) {
	img := &Image{Width: 300, Height: 200}
	s := img.Size()
	assert.Equal(t, 300.0, s.W)
	assert.Equal(t, 200.0, s.H)
}
