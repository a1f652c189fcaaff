package layout

// Grid is the template-free layout used for contact-sheet style folder
// documents: Cols x Rows cells filled column by column.
type Grid struct {
	Cols    int
	Rows    int
	HMargin float64
	VMargin float64
}

// DefaultGrid is two columns of three images with 10pt gutters.
var DefaultGrid = Grid{Cols: 2, Rows: 3, HMargin: 10, VMargin: 10}

// PerPage is the number of cells on one page.
func (g Grid) PerPage() int { return g.Cols * g.Rows }

// Cell returns the rectangle of cell idx (0-based within a page). Cells run
// down the first column, then down the second.
func (g Grid) Cell(page Size, idx int) Rect {
	cellW := (page.W - float64(g.Cols+1)*g.HMargin) / float64(g.Cols)
	cellH := (page.H - float64(g.Rows+1)*g.VMargin) / float64(g.Rows)
	col := float64(idx / g.Rows)
	row := float64(idx % g.Rows)
	return Rect{
		X: g.HMargin + col*(cellW+g.HMargin),
		Y: page.H - g.VMargin - (row+1)*cellH - row*g.VMargin,
		W: cellW,
		H: cellH,
	}
}

// Place fits img into cell idx and centers it.
func (g Grid) Place(page Size, idx int, img Size) Rect {
	c := g.Cell(page, idx)
	d := Fit(img, Size{W: c.W, H: c.H})
	return Rect{
		X: c.X + (c.W-d.W)/2,
		Y: c.Y + (c.H-d.H)/2,
		W: d.W,
		H: d.H,
	}
}
