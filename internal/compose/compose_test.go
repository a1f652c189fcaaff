// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/layout"
	"github.com/pdiddy/notepacket/pkg/types"
)

// writeTemplate creates a one-page A4 PDF with a line of text.
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	return writeTemplateSize(t, dir, "A4")
}

// writeTemplateSize creates a one-page template on a gofpdf named size.
func writeTemplateSize(t *testing.T, dir, size string) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", size, "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, 40, "worksheet template")
	path := filepath.Join(dir, "template.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

// writePNG creates a solid w x h PNG.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newComposer(t *testing.T, dir string) *Composer {
	t.Helper()
	c, err := New(writeTemplate(t, dir), types.DefaultLayout(), zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewReadsTemplateSize(t *testing.T) {
	c := newComposer(t, t.TempDir())
	assert.InDelta(t, layout.A4.W, c.PageSize().W, 0.5)
	assert.InDelta(t, layout.A4.H, c.PageSize().H, 0.5)
}

func TestNewRejectsBadTemplate(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a pdf"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"missing", filepath.Join(dir, "missing.pdf")},
		{"directory", dir},
		{"not a pdf", garbage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.path, types.DefaultLayout(), zap.NewNop())
			assert.True(t, errors.Is(err, ErrTemplate), "got %v", err)
		})
	}
}

func TestComposePageCount(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		dir := t.TempDir()
		c := newComposer(t, dir)
		var paths []string
		for i := 0; i < n; i++ {
			paths = append(paths, writePNG(t, dir, "img"+string(rune('a'+i))+".png", 60, 40))
		}

		res, err := c.Compose(context.Background(), paths, filepath.Join(dir, "out", "doc.pdf"))
		require.NoError(t, err)
		want := (n + 1) / 2
		assert.Equal(t, want, res.Pages)
		assert.Len(t, res.Placements, n)

		got, err := api.PageCountFile(res.Path)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%d images", n)
	}
}

func TestComposeStampsTemplateOnLetter(t *testing.T) {
	dir := t.TempDir()
	c, err := New(writeTemplateSize(t, dir, "Letter"), types.DefaultLayout(), zap.NewNop())
	require.NoError(t, err)
	assert.InDelta(t, 612, c.PageSize().W, 0.5)
	assert.InDelta(t, 792, c.PageSize().H, 0.5)

	paths := []string{
		writePNG(t, dir, "1.png", 60, 40),
		writePNG(t, dir, "2.png", 60, 40),
		writePNG(t, dir, "3.png", 60, 40),
	}
	res, err := c.Compose(context.Background(), paths, filepath.Join(dir, "doc.pdf"))
	require.NoError(t, err)

	stamped, err := api.HasWatermarksFile(res.Path, nil)
	require.NoError(t, err)
	assert.True(t, stamped, "template not stamped behind the pages")

	dims, err := api.PageDimsFile(res.Path)
	require.NoError(t, err)
	require.Len(t, dims, 2)
	for i, d := range dims {
		assert.InDelta(t, 612, d.Width, 0.5, "page %d width", i+1)
		assert.InDelta(t, 792, d.Height, 0.5, "page %d height", i+1)
	}
}

func TestComposeTwoSlotsDoNotOverlap(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, dir)
	paths := []string{
		writePNG(t, dir, "wide.png", 300, 100),
		writePNG(t, dir, "tall.png", 100, 300),
	}

	res, err := c.Compose(context.Background(), paths, filepath.Join(dir, "doc.pdf"))
	require.NoError(t, err)
	require.Len(t, res.Placements, 2)

	upper, lower := res.Placements[0], res.Placements[1]
	assert.Equal(t, 1, upper.Page)
	assert.Equal(t, 1, lower.Page)
	assert.Equal(t, 0, upper.Slot)
	assert.Equal(t, 1, lower.Slot)
	assert.False(t, upper.Rect.OverlapsVertically(lower.Rect))
	assert.Greater(t, upper.Rect.Y, lower.Rect.Y)

	for _, p := range res.Placements {
		assert.LessOrEqual(t, p.Rect.W, 300.0+1e-9)
		assert.LessOrEqual(t, p.Rect.H, 160.0+1e-9)
	}
}

func TestComposeNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, dir)
	paths := []string{writePNG(t, dir, "a.png", 20, 20)}
	out := filepath.Join(dir, "doc.pdf")

	first, err := c.Compose(context.Background(), paths, out)
	require.NoError(t, err)
	before, err := os.Stat(first.Path)
	require.NoError(t, err)

	second, err := c.Compose(context.Background(), paths, out)
	require.NoError(t, err)
	third, err := c.Compose(context.Background(), paths, out)
	require.NoError(t, err)

	assert.Equal(t, out, first.Path)
	assert.Equal(t, filepath.Join(dir, "doc_1.pdf"), second.Path)
	assert.Equal(t, filepath.Join(dir, "doc_2.pdf"), third.Path)

	after, err := os.Stat(first.Path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestComposeSkipsUnreadableImages(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, dir)
	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0o644))

	paths := []string{
		filepath.Join(dir, "missing.png"),
		broken,
		writePNG(t, dir, "good.png", 40, 40),
	}
	res, err := c.Compose(context.Background(), paths, filepath.Join(dir, "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.Len(t, res.Skipped, 2)
	require.Len(t, res.Placements, 1)
	assert.Equal(t, 0, res.Placements[0].Slot)
}

func TestComposeNoImagesWritesNothing(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, dir)
	outDir := filepath.Join(dir, "out")

	_, err := c.Compose(context.Background(), []string{filepath.Join(dir, "nope.jpg")}, filepath.Join(outDir, "doc.pdf"))
	assert.True(t, errors.Is(err, ErrNoImages))
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestComposeCancelled(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Compose(ctx, []string{writePNG(t, dir, "a.png", 10, 10)}, filepath.Join(dir, "doc.pdf"))
	assert.True(t, errors.Is(err, context.Canceled))
	entries, _ := filepath.Glob(filepath.Join(dir, "*.pdf"))
	assert.Equal(t, []string{filepath.Join(dir, "template.pdf")}, entries)
}

func TestComposeGrid(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 7; i++ {
		paths = append(paths, writePNG(t, dir, "g"+string(rune('0'+i))+".png", 50, 30))
	}

	res, err := ComposeGrid(context.Background(), paths, filepath.Join(dir, "grid.pdf"), layout.DefaultGrid, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)

	got, err := api.PageCountFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	require.Len(t, res.Placements, 7)
	colA, colB := res.Placements[0], res.Placements[3]
	assert.Equal(t, 1, colB.Page)
	assert.Less(t, colA.Rect.X, layout.A4.W/2)
	assert.Greater(t, colB.Rect.X, layout.A4.W/2)
	assert.Equal(t, 2, res.Placements[6].Page)
	assert.Equal(t, 0, res.Placements[6].Slot)
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "images.pdf")
	assert.Equal(t, p, UniquePath(p))

	require.NoError(t, os.WriteFile(p, nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "images_1.pdf"), UniquePath(p))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "images_1.pdf"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "images_2.pdf"), UniquePath(p))
}
