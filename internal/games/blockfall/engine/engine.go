package engine

import "time"

// Status is the lifecycle stage of a game.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// LockResult describes the most recent lock.
type LockResult struct {
	Piece        Piece
	LinesCleared int
	Points       int  // line-clear points awarded by this lock
	LevelBefore  int
	LevelAfter   int
	ToppedOut    bool // the following piece could not spawn
}

// LeveledUp reports whether the lock raised the level.
func (r LockResult) LeveledUp() bool {
	return r.LevelAfter > r.LevelBefore
}

// Engine owns one game session. It is not safe for concurrent use; the
// caller serialises every command.
type Engine struct {
	rules  Rules
	source PieceSource

	grid    Grid
	current *Piece
	next    *Piece
	score   int
	level   int
	lines   int
	status  Status

	locked   int
	lastLock LockResult
}

// New returns an idle engine.
func New(rules Rules, source PieceSource) *Engine {
	e := &Engine{
		rules:  rules,
		source: source,
	}
	e.Reset()
	return e
}

// Rules returns the rule set the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Status returns the current lifecycle stage.
func (e *Engine) Status() Status {
	return e.status
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current level, starting at 1.
func (e *Engine) Level() int {
	return e.level
}

// Lines returns the total rows cleared.
func (e *Engine) Lines() int {
	return e.lines
}

// PiecesLocked returns the number of pieces locked this game.
func (e *Engine) PiecesLocked() int {
	return e.locked
}

// LastLock returns the result of the latest lock. It is the zero value
// until a piece has locked.
func (e *Engine) LastLock() LockResult {
	return e.lastLock
}

// Speed returns the gravity interval for the current level.
func (e *Engine) Speed() time.Duration {
	return e.rules.Speed(e.level)
}

// Reset returns to idle with an empty grid and no pieces.
func (e *Engine) Reset() {
	e.grid = NewGrid()
	e.current = nil
	e.next = nil
	e.score = 0
	e.level = 1
	e.lines = 0
	e.locked = 0
	e.lastLock = LockResult{}
	e.status = StatusIdle
}

// Start begins a new game from any status.
func (e *Engine) Start() {
	e.Reset()
	cur := e.spawn()
	nxt := e.spawn()
	e.current = &cur
	e.next = &nxt
	e.status = StatusPlaying
}

// Pause suspends a game in progress.
func (e *Engine) Pause() {
	if e.status == StatusPlaying {
		e.status = StatusPaused
	}
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	if e.status == StatusPaused {
		e.status = StatusPlaying
	}
}

// TogglePause flips between playing and paused.
func (e *Engine) TogglePause() {
	switch e.status {
	case StatusPlaying:
		e.Pause()
	case StatusPaused:
		e.Resume()
	}
}

// active reports whether piece commands apply.
func (e *Engine) active() bool {
	return e.status == StatusPlaying && e.current != nil
}

// MoveLeft shifts the falling piece one column left if there is room.
func (e *Engine) MoveLeft() {
	e.shift(-1)
}

// MoveRight shifts the falling piece one column right if there is room.
func (e *Engine) MoveRight() {
	e.shift(1)
}

func (e *Engine) shift(dx int) {
	if !e.active() {
		return
	}
	if IsValidPlacement(e.grid, *e.current, dx, 0) {
		moved := e.current.Moved(dx, 0)
		e.current = &moved
	}
}

// Rotate turns the falling piece clockwise, using wall kicks if needed.
// A rotation with no legal placement is dropped.
func (e *Engine) Rotate() {
	if !e.active() {
		return
	}
	if rotated, ok := ResolveRotation(e.grid, *e.current); ok {
		e.current = &rotated
	}
}

// Tick applies one step of gravity. A piece that cannot fall locks.
func (e *Engine) Tick() {
	e.stepDown(0)
}

// SoftDrop moves the piece down one row on player request. It behaves like
// Tick apart from the optional soft-drop bonus.
func (e *Engine) SoftDrop() {
	e.stepDown(e.rules.SoftDropPerRow)
}

func (e *Engine) stepDown(bonus int) {
	if !e.active() {
		return
	}
	if IsValidPlacement(e.grid, *e.current, 0, 1) {
		moved := e.current.Moved(0, 1)
		e.current = &moved
		e.score += bonus
		return
	}
	e.lock()
}

// HardDrop drops the piece to its lowest legal row and locks it at once.
func (e *Engine) HardDrop() {
	if !e.active() {
		return
	}
	dy := DropDistance(e.grid, *e.current)
	moved := e.current.Moved(0, dy)
	e.current = &moved
	e.score += dy * e.rules.HardDropPerRow
	e.lock()
}

// lock writes the current piece into the grid, clears rows, scores,
// promotes the next piece and checks for top-out.
func (e *Engine) lock() {
	piece := *e.current
	placed := e.grid.Place(piece)
	cleared, n := placed.ClearFullRows()

	levelBefore := e.level
	points := e.rules.ClearScore(n, levelBefore)

	e.grid = cleared
	e.score += points
	e.lines += n
	e.level = e.rules.LevelFor(e.lines)
	e.locked++

	result := LockResult{
		Piece:        piece,
		LinesCleared: n,
		Points:       points,
		LevelBefore:  levelBefore,
		LevelAfter:   e.level,
	}

	var promoted Piece
	if e.next != nil {
		promoted = Spawn(e.next.Type)
	} else {
		promoted = e.spawn()
	}
	upcoming := e.spawn()

	if !IsValidPlacement(e.grid, promoted, 0, 0) {
		e.current = nil
		e.next = nil
		e.status = StatusGameOver
		result.ToppedOut = true
	} else {
		e.current = &promoted
		e.next = &upcoming
	}
	e.lastLock = result
}

func (e *Engine) spawn() Piece {
	return Spawn(e.source.Next())
}

// Ghost returns where the falling piece would land on a hard drop.
func (e *Engine) Ghost() (Piece, bool) {
	if e.current == nil {
		return Piece{}, false
	}
	return e.current.Moved(0, DropDistance(e.grid, *e.current)), true
}

// Grid returns a copy of the playfield without the falling piece.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Current returns a copy of the falling piece.
func (e *Engine) Current() (Piece, bool) {
	if e.current == nil {
		return Piece{}, false
	}
	return *e.current, true
}

// Next returns a copy of the queued piece.
func (e *Engine) Next() (Piece, bool) {
	if e.next == nil {
		return Piece{}, false
	}
	return *e.next, true
}
