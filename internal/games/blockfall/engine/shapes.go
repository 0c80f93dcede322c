package engine

// Shape is a boolean occupancy matrix indexed [row][col].
type Shape [][]bool

// Width returns the number of columns in the bounding box.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the bounding box.
func (s Shape) Height() int {
	return len(s)
}

// Equal reports whether two shapes have identical dimensions and occupancy.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

// RotateCW returns the shape turned 90 degrees clockwise.
// Row r of the result is column r of the source read bottom to top.
func RotateCW(s Shape) Shape {
	rows, cols := s.Height(), s.Width()
	out := make(Shape, cols)
	for c := range cols {
		out[c] = make([]bool, rows)
		for r := range rows {
			out[c][rows-1-r] = s[r][c]
		}
	}
	return out
}

// parseShape builds a Shape from rows of '#' (filled) and '.' (empty).
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// baseShapes holds the spawn orientation of each piece.
var baseShapes = map[PieceType]Shape{
	PieceI: parseShape(
		"....",
		"####",
		"....",
		"....",
	),
	PieceO: parseShape(
		"##",
		"##",
	),
	PieceT: parseShape(
		".#.",
		"###",
		"...",
	),
	PieceS: parseShape(
		".##",
		"##.",
		"...",
	),
	PieceZ: parseShape(
		"##.",
		".##",
		"...",
	),
	PieceJ: parseShape(
		"#..",
		"###",
		"...",
	),
	PieceL: parseShape(
		"..#",
		"###",
		"...",
	),
}

// rotations[t][r] is piece t rotated clockwise r times.
var rotations = func() map[PieceType][4]Shape {
	table := make(map[PieceType][4]Shape, len(baseShapes))
	for t, base := range baseShapes {
		var states [4]Shape
		states[0] = base
		for r := 1; r < 4; r++ {
			states[r] = RotateCW(states[r-1])
		}
		table[t] = states
	}
	return table
}()

// normalizeRotation maps any integer onto 0..3.
func normalizeRotation(r int) int {
	return ((r % 4) + 4) % 4
}

// ShapeFor returns the occupancy matrix of piece t at the given rotation.
// The rotation is taken mod 4. The returned shape is shared and must not be
// modified; use Clone for a private copy. Unknown types yield nil.
func ShapeFor(t PieceType, rotation int) Shape {
	states, ok := rotations[t]
	if !ok {
		return nil
	}
	return states[normalizeRotation(rotation)]
}
