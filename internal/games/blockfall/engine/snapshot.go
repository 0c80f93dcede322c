package engine

// Snapshot is a read-only copy of the game state for renderers, drivers
// and tests. Mutating it has no effect on the engine.
type Snapshot struct {
	Grid         Grid
	Current      *Piece
	CurrentCells []Point
	GhostCells   []Point
	Next         *Piece
	Score        int
	Level        int
	Lines        int
	Status       Status
	PiecesLocked int
	LastClear    int
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Grid:         e.grid,
		Score:        e.score,
		Level:        e.level,
		Lines:        e.lines,
		Status:       e.status,
		PiecesLocked: e.locked,
		LastClear:    e.lastLock.LinesCleared,
	}
	if cur, ok := e.Current(); ok {
		s.Current = &cur
		s.CurrentCells = cur.Cells()
		if ghost, ok := e.Ghost(); ok {
			s.GhostCells = ghost.Cells()
		}
	}
	if nxt, ok := e.Next(); ok {
		s.Next = &nxt
	}
	return s
}

// Composite returns the grid with the falling piece drawn in, for display.
func (s Snapshot) Composite() Grid {
	if s.Current == nil {
		return s.Grid
	}
	return s.Grid.Place(*s.Current)
}
