package engine

// Kick is an alternate offset tried when a rotation collides in place.
type Kick struct {
	DX, DY int
}

// Kicks is the ordered wall-kick table. The first offset that produces a
// legal placement is used.
var Kicks = []Kick{
	{DX: 1, DY: 0},
	{DX: -1, DY: 0},
	{DX: 0, DY: -1},
	{DX: 2, DY: 0},
	{DX: -2, DY: 0},
}

// IsValidPlacement reports whether p, offset by (dx, dy), fits on g.
// Cells left of column 0, right of the last column or below the floor are
// illegal; cells above the top row are allowed so pieces can spawn partly
// hidden. Cells inside the grid must be empty.
func IsValidPlacement(g Grid, p Piece, dx, dy int) bool {
	for _, pt := range p.cellsAt(dx, dy) {
		if pt.X < 0 || pt.X >= Width || pt.Y >= Height {
			return false
		}
		if pt.Y >= 0 && !g[pt.Y][pt.X].IsEmpty() {
			return false
		}
	}
	return true
}

// ResolveRotation turns p clockwise and looks for a legal placement, first
// in place and then at each offset in Kicks. It returns the rotated piece
// with the winning offset applied, or p unchanged and false.
func ResolveRotation(g Grid, p Piece) (Piece, bool) {
	rotated := p.Rotated()
	if IsValidPlacement(g, rotated, 0, 0) {
		return rotated, true
	}
	for _, k := range Kicks {
		if IsValidPlacement(g, rotated, k.DX, k.DY) {
			return rotated.Moved(k.DX, k.DY), true
		}
	}
	return p, false
}

// DropDistance returns the greatest dy >= 0 for which p stays legal.
// It returns 0 when p cannot move down at all.
func DropDistance(g Grid, p Piece) int {
	if !p.Type.Valid() {
		return 0
	}
	dy := 0
	for IsValidPlacement(g, p, 0, dy+1) {
		dy++
	}
	return dy
}
