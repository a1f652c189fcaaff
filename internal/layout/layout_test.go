package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notepacket/pkg/types"
)

const eps = 1e-9

func TestFit(t *testing.T) {
	box := Size{W: 300, H: 160}
	tests := []struct {
		name string
		img  Size
	}{
		{"wide", Size{W: 4000, H: 1000}},
		{"tall", Size{W: 600, H: 2400}},
		{"small", Size{W: 30, H: 20}},
		{"exact ratio", Size{W: 600, H: 320}},
		{"square", Size{W: 512, H: 512}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Fit(tt.img, box)
			assert.LessOrEqual(t, d.W, box.W+eps)
			assert.LessOrEqual(t, d.H, box.H+eps)
			hitW := math.Abs(d.W-box.W) < eps
			hitH := math.Abs(d.H-box.H) < eps
			assert.True(t, hitW || hitH, "fit %v touches neither axis of %v", d, box)
			assert.InDelta(t, tt.img.W/tt.img.H, d.W/d.H, 1e-9, "aspect ratio changed")
		})
	}
}

func TestFitZeroSize(t *testing.T) {
	assert.Equal(t, Size{}, Fit(Size{W: 0, H: 10}, Size{W: 300, H: 160}))
}

func TestCellHeight(t *testing.T) {
	assert.InDelta(t, (841.89-90)/2, CellHeight(A4, 30), eps)
}

func TestPlaceTwoSlotsDoNotOverlap(t *testing.T) {
	l := types.Layout{TargetW: 300, TargetH: 160, HMargin: 20, VMargin: 30}
	for _, offsets := range []struct{ y1, y2 float64 }{{0, 0}, {-50, 10}} {
		l.YOffset1, l.YOffset2 = offsets.y1, offsets.y2
		img := Size{W: 1024, H: 768}

		first := Place(A4, l, 0, img)
		second := Place(A4, l, 1, img)

		assert.Greater(t, first.Y, second.Y, "slot 0 should sit above slot 1")
		assert.False(t, first.OverlapsVertically(second), "slots overlap: %+v %+v", first, second)
	}
}

func TestPlaceCentersWithinTargetBox(t *testing.T) {
	l := types.Layout{TargetW: 300, TargetH: 160, HMargin: 20, VMargin: 30, XOffset1: 5, YOffset1: -7}
	r := Place(A4, l, 0, Size{W: 100, H: 100})

	// 100x100 fits to 160x160, leaving 70pt either side of a 300pt box.
	assert.InDelta(t, 160, r.W, eps)
	assert.InDelta(t, 160, r.H, eps)
	assert.InDelta(t, 20+70+5, r.X, eps)

	_, y := SlotOrigin(A4, l, 0)
	assert.InDelta(t, y-7, r.Y, eps)
}

func TestSlotBox(t *testing.T) {
	l := types.DefaultLayout()
	box := SlotBox(A4, l, 1)
	assert.InDelta(t, 20, box.X, eps)
	assert.InDelta(t, 30+10, box.Y, eps)
	assert.Equal(t, 300.0, box.W)
	assert.Equal(t, 160.0, box.H)
}

func TestTopLeft(t *testing.T) {
	page := Size{W: 200, H: 100}
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	assert.Equal(t, Rect{X: 10, Y: 40, W: 30, H: 40}, r.TopLeft(page))
}

func TestPagesAndChunk(t *testing.T) {
	for n := 0; n <= 7; n++ {
		items := make([]int, n)
		groups := Chunk(items, SlotsPerPage)
		require.Len(t, groups, Pages(n, SlotsPerPage), "n=%d", n)
		assert.Equal(t, (n+1)/2, len(groups), "n=%d", n)
		total := 0
		for _, g := range groups {
			assert.LessOrEqual(t, len(g), SlotsPerPage)
			total += len(g)
		}
		assert.Equal(t, n, total)
	}
}

func TestGridColumnMajor(t *testing.T) {
	g := DefaultGrid
	require.Equal(t, 6, g.PerPage())

	first := g.Cell(A4, 0)
	third := g.Cell(A4, 2)
	fourth := g.Cell(A4, 3)

	assert.InDelta(t, 10, first.X, eps)
	assert.InDelta(t, first.X, third.X, eps, "cells 0..2 share column A")
	assert.Greater(t, fourth.X, first.X, "cell 3 starts column B")
	assert.InDelta(t, first.Y, fourth.Y, eps, "cell 3 is on the top row")
	assert.Greater(t, first.Y, third.Y)
}

func TestGridPlaceStaysInCell(t *testing.T) {
	g := DefaultGrid
	for idx := 0; idx < g.PerPage(); idx++ {
		c := g.Cell(A4, idx)
		r := g.Place(A4, idx, Size{W: 800, H: 200})
		assert.GreaterOrEqual(t, r.X, c.X-eps)
		assert.GreaterOrEqual(t, r.Y, c.Y-eps)
		assert.LessOrEqual(t, r.X+r.W, c.X+c.W+eps)
		assert.LessOrEqual(t, r.Top(), c.Top()+eps)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(types.DefaultLayout()))

	l := types.DefaultLayout()
	l.TargetW = 900
	l.YOffset2 = -250
	err := Validate(l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Contains(t, err.Error(), "target_w=900")
	assert.Contains(t, err.Error(), "y_offset2=-250")
}
