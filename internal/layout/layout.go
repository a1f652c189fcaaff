// Package layout computes where images land on a page. Everything here is
// plain arithmetic in PDF points with the origin at the bottom-left corner,
// so the composer and the preview command share one source of truth.
package layout

import (
	"github.com/pdiddy/notepacket/pkg/types"
)

// SlotsPerPage is the number of image slots in the template layout.
const SlotsPerPage = 2

// Size is a width and height in points.
type Size struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// A4 is the fallback page size when the template's size is unknown.
var A4 = Size{W: 595.28, H: 841.89}

// Rect is an axis-aligned rectangle. X and Y name the lower-left corner in
// PDF coordinates unless a method says otherwise.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Top returns the upper edge in PDF coordinates.
func (r Rect) Top() float64 { return r.Y + r.H }

// TopLeft converts r to a top-left origin on a page of the given height,
// which is what gofpdf expects.
func (r Rect) TopLeft(page Size) Rect {
	return Rect{X: r.X, Y: page.H - r.Y - r.H, W: r.W, H: r.H}
}

// OverlapsVertically reports whether the vertical extents of r and o intersect.
func (r Rect) OverlapsVertically(o Rect) bool {
	return r.Y < o.Top() && o.Y < r.Top()
}

// Fit scales img uniformly so it fits inside box. One axis always ends up
// equal to the box.
func Fit(img, box Size) Size {
	if img.W <= 0 || img.H <= 0 {
		return Size{}
	}
	ratio := min(box.W/img.W, box.H/img.H)
	return Size{W: img.W * ratio, H: img.H * ratio}
}

// CellHeight is the height of one row in the two-row template layout.
func CellHeight(page Size, vMargin float64) float64 {
	return (page.H - (SlotsPerPage+1)*vMargin) / SlotsPerPage
}

// SlotOrigin returns the unshifted lower-left corner of slot 0 or 1.
func SlotOrigin(page Size, l types.Layout, slot int) (x, y float64) {
	cellH := CellHeight(page, l.VMargin)
	row := float64(slot)
	x = l.HMargin
	y = page.H - l.VMargin - (row+1)*cellH - row*l.VMargin
	return x, y
}

// Place returns the drawn rectangle for an image of size img in slot. The
// image is fit into TargetW x TargetH, centered in that box, and shifted by
// the slot's offset.
func Place(page Size, l types.Layout, slot int, img Size) Rect {
	x, y := SlotOrigin(page, l, slot)
	dx, dy := l.SlotOffset(slot)
	d := Fit(img, Size{W: l.TargetW, H: l.TargetH})
	return Rect{
		X: x + (l.TargetW-d.W)/2 + dx,
		Y: y + (l.TargetH-d.H)/2 + dy,
		W: d.W,
		H: d.H,
	}
}

// SlotBox returns the full target box of a slot after its offset. The
// preview command draws these.
func SlotBox(page Size, l types.Layout, slot int) Rect {
	x, y := SlotOrigin(page, l, slot)
	dx, dy := l.SlotOffset(slot)
	return Rect{X: x + dx, Y: y + dy, W: l.TargetW, H: l.TargetH}
}

// Pages returns how many pages n items need at per items a page.
func Pages(n, per int) int {
	if n <= 0 || per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

// Chunk splits items into consecutive groups of at most per elements. The
// last group holds the remainder.
func Chunk[T any](items []T, per int) [][]T {
	if per <= 0 {
		return nil
	}
	groups := make([][]T, 0, Pages(len(items), per))
	for start := 0; start < len(items); start += per {
		end := min(start+per, len(items))
		groups = append(groups, items[start:end])
	}
	return groups
}
