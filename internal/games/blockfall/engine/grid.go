package engine

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Grid is the playfield, indexed [row][col] with row 0 at the top.
// It is an array so assignment copies it: Place and ClearFullRows never
// touch the receiver.
type Grid [Height][Width]Cell

// NewGrid returns an empty grid.
func NewGrid() Grid {
	return Grid{}
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the cell at column x, row y, or CellEmpty when out of bounds.
func (g Grid) At(x, y int) Cell {
	if !InBounds(x, y) {
		return CellEmpty
	}
	return g[y][x]
}

// IsOccupied reports whether (x, y) is inside the grid and non-empty.
func (g Grid) IsOccupied(x, y int) bool {
	return InBounds(x, y) && !g[y][x].IsEmpty()
}

// Place returns a copy of the grid with every cell of p set to p's type.
// Cells outside the grid are skipped.
func (g Grid) Place(p Piece) Grid {
	out := g
	cell := CellOf(p.Type)
	for _, pt := range p.Cells() {
		if InBounds(pt.X, pt.Y) {
			out[pt.Y][pt.X] = cell
		}
	}
	return out
}

// RowFull reports whether every cell in row y is occupied.
func (g Grid) RowFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	for _, c := range g[y] {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (g Grid) FullRows() []int {
	var rows []int
	for y := range Height {
		if g.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearFullRows removes every full row at once and pads the top with empty
// rows. Fullness is decided on the receiver before any row moves, so the
// order rows are examined in cannot change the result.
func (g Grid) ClearFullRows() (Grid, int) {
	full := [Height]bool{}
	cleared := 0
	for y := range Height {
		if g.RowFull(y) {
			full[y] = true
			cleared++
		}
	}
	if cleared == 0 {
		return g, 0
	}

	var out Grid
	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if full[y] {
			continue
		}
		out[dst] = g[y]
		dst--
	}
	return out, cleared
}

// Filled returns the number of occupied cells.
func (g Grid) Filled() int {
	n := 0
	for y := range Height {
		for x := range Width {
			if !g[y][x].IsEmpty() {
				n++
			}
		}
	}
	return n
}
