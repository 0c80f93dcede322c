package engine

// Point is an absolute grid coordinate.
type Point struct {
	X, Y int
}

// Piece is a shape placed on the grid.
// X and Y locate the top-left corner of the rotated shape's bounding box.
type Piece struct {
	Type     PieceType
	X, Y     int
	Rotation int
}

// Spawn returns a piece of type t at its spawn anchor: horizontally
// centred, top row, rotation 0.
func Spawn(t PieceType) Piece {
	return Piece{
		Type:     t,
		X:        (Width - ShapeFor(t, 0).Width()) / 2,
		Y:        0,
		Rotation: 0,
	}
}

// Shape returns the occupancy matrix for the piece's rotation.
func (p Piece) Shape() Shape {
	return ShapeFor(p.Type, p.Rotation)
}

// Cells returns the absolute coordinates of every occupied cell.
func (p Piece) Cells() []Point {
	return p.cellsAt(0, 0)
}

// cellsAt returns the occupied cells as if the piece were offset by (dx, dy).
func (p Piece) cellsAt(dx, dy int) []Point {
	shape := p.Shape()
	cells := make([]Point, 0, 4)
	for r, row := range shape {
		for c, filled := range row {
			if filled {
				cells = append(cells, Point{X: p.X + dx + c, Y: p.Y + dy + r})
			}
		}
	}
	return cells
}

// Moved returns a copy shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy turned clockwise once, without collision checks.
func (p Piece) Rotated() Piece {
	p.Rotation = normalizeRotation(p.Rotation + 1)
	return p
}
