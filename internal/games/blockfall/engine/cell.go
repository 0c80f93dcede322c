// Package engine implements the deterministic falling-block game state:
// shapes, grid, collision, locking, line clearing, scoring and the
// idle/playing/paused/gameover state machine.
//
// The package has no platform dependencies. Callers drive it through
// commands (MoveLeft, Rotate, Tick, ...) and observe it through Snapshot.
package engine

// PieceType identifies one of the seven tetromino shapes.
type PieceType uint8

const (
	PieceI PieceType = iota + 1
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceTypes lists every piece type in canonical order.
var PieceTypes = [...]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// String returns the single-letter name of the piece type.
func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "?"
	}
}

// Valid reports whether t is one of the seven piece types.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

// Cell is the content of one grid square.
// The zero value is CellEmpty; any other value carries a piece type tag.
type Cell uint8

// CellEmpty marks an unoccupied square.
const CellEmpty Cell = 0

// CellOf returns the cell value written when a piece of type t locks.
func CellOf(t PieceType) Cell {
	return Cell(t)
}

// IsEmpty reports whether the cell is unoccupied.
func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

// Type returns the piece type stored in the cell.
// ok is false for empty cells.
func (c Cell) Type() (t PieceType, ok bool) {
	if c == CellEmpty {
		return 0, false
	}
	return PieceType(c), true
}
