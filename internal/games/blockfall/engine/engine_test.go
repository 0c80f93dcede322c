package engine

import (
	"testing"
	"time"
)

func newTestEngine(types ...PieceType) *Engine {
	return New(DefaultRules(), NewSequenceSource(types...))
}

func TestNewEngineIsIdle(t *testing.T) {
	e := newTestEngine(PieceO)
	s := e.Snapshot()

	if s.Status != StatusIdle {
		t.Errorf("Status = %v, expected idle", s.Status)
	}
	if s.Current != nil || s.Next != nil {
		t.Error("idle engine should have no pieces")
	}
	if s.Score != 0 || s.Level != 1 || s.Lines != 0 {
		t.Errorf("score/level/lines = %d/%d/%d, expected 0/1/0", s.Score, s.Level, s.Lines)
	}
}

func TestStart(t *testing.T) {
	e := newTestEngine(PieceT, PieceI)
	e.Start()
	s := e.Snapshot()

	if s.Status != StatusPlaying {
		t.Errorf("Status = %v, expected playing", s.Status)
	}
	if s.Current == nil || s.Next == nil {
		t.Fatal("Start should create current and next pieces")
	}
	if s.Current.Type != PieceT || s.Next.Type != PieceI {
		t.Errorf("pieces = %s/%s, expected T/I", s.Current.Type, s.Next.Type)
	}
	if s.Score != 0 || s.Level != 1 || s.Lines != 0 {
		t.Errorf("score/level/lines = %d/%d/%d, expected 0/1/0", s.Score, s.Level, s.Lines)
	}
	if s.Current.X != 3 || s.Current.Y != 0 || s.Current.Rotation != 0 {
		t.Errorf("T spawned at %+v, expected X=3 Y=0 Rotation=0", *s.Current)
	}
}

func TestSpawnIsCentred(t *testing.T) {
	tests := []struct {
		piece PieceType
		x     int
	}{
		{PieceI, 3},
		{PieceO, 4},
		{PieceT, 3},
		{PieceL, 3},
	}
	for _, tc := range tests {
		if p := Spawn(tc.piece); p.X != tc.x || p.Y != 0 || p.Rotation != 0 {
			t.Errorf("Spawn(%s) = %+v, expected X=%d Y=0 Rotation=0", tc.piece, p, tc.x)
		}
	}
}

func TestStartResetsAfterGameOver(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()
	e.score = 500
	e.lines = 12
	e.level = 2
	e.status = StatusGameOver
	e.current, e.next = nil, nil

	e.Start()
	s := e.Snapshot()
	if s.Status != StatusPlaying || s.Score != 0 || s.Lines != 0 || s.Level != 1 {
		t.Errorf("after restart: status=%v score=%d lines=%d level=%d", s.Status, s.Score, s.Lines, s.Level)
	}
	if s.Grid.Filled() != 0 {
		t.Error("restart should clear the grid")
	}
}

func TestPauseResume(t *testing.T) {
	e := newTestEngine(PieceO)

	e.Pause()
	if e.Status() != StatusIdle {
		t.Errorf("Pause from idle changed status to %v", e.Status())
	}

	e.Start()
	e.Pause()
	if e.Status() != StatusPaused {
		t.Fatalf("Status = %v, expected paused", e.Status())
	}
	e.Pause()
	if e.Status() != StatusPaused {
		t.Errorf("second Pause changed status to %v", e.Status())
	}

	e.Resume()
	if e.Status() != StatusPlaying {
		t.Errorf("Status = %v, expected playing", e.Status())
	}
	e.Resume()
	if e.Status() != StatusPlaying {
		t.Errorf("Resume while playing changed status to %v", e.Status())
	}

	e.TogglePause()
	if e.Status() != StatusPaused {
		t.Errorf("TogglePause from playing = %v, expected paused", e.Status())
	}
	e.TogglePause()
	if e.Status() != StatusPlaying {
		t.Errorf("TogglePause from paused = %v, expected playing", e.Status())
	}
}

func TestCommandsIgnoredUnlessPlaying(t *testing.T) {
	e := newTestEngine(PieceO)
	e.MoveLeft()
	e.Rotate()
	e.Tick()
	e.HardDrop()
	if e.Status() != StatusIdle || e.Score() != 0 {
		t.Error("commands in idle should be no-ops")
	}

	e.Start()
	e.Pause()
	before := e.Snapshot()
	e.MoveLeft()
	e.MoveRight()
	e.Rotate()
	e.SoftDrop()
	e.Tick()
	e.HardDrop()
	after := e.Snapshot()
	if *after.Current != *before.Current || after.Grid != before.Grid || after.Score != before.Score {
		t.Error("commands while paused should leave state unchanged")
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()
	e.HardDrop()
	e.Reset()

	s := e.Snapshot()
	if s.Status != StatusIdle || s.Current != nil || s.Next != nil {
		t.Errorf("Reset: status=%v current=%v next=%v", s.Status, s.Current, s.Next)
	}
	if s.Grid.Filled() != 0 || s.Score != 0 {
		t.Error("Reset should clear grid and score")
	}
}

func TestMoveLeftStopsAtWall(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()

	for range 4 {
		e.MoveLeft()
	}
	cur, _ := e.Current()
	if cur.X != 0 {
		t.Fatalf("X = %d after four moves, expected 0", cur.X)
	}

	for range 3 {
		e.MoveLeft()
	}
	cur, _ = e.Current()
	if cur.X != 0 {
		t.Errorf("X = %d after pushing into wall, expected 0", cur.X)
	}
}

func TestMoveRightStopsAtWall(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()

	for range 10 {
		e.MoveRight()
	}
	cur, _ := e.Current()
	if cur.X != Width-2 {
		t.Errorf("X = %d, expected %d", cur.X, Width-2)
	}
}

func TestMoveBlockedByStack(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()
	e.grid[1][3] = CellOf(PieceJ)

	e.MoveLeft()
	cur, _ := e.Current()
	if cur.X != 4 {
		t.Errorf("X = %d, expected move into occupied cell to be rejected", cur.X)
	}
}

func TestRotateCommitsKick(t *testing.T) {
	e := newTestEngine(PieceI)
	e.Start()

	e.Rotate() // vertical, column 5
	for range 5 {
		e.MoveRight()
	}
	cur, _ := e.Current()
	if cur.X != 7 || cur.Rotation != 1 {
		t.Fatalf("setup: piece at %+v, expected X=7 Rotation=1", cur)
	}

	e.Rotate()
	cur, _ = e.Current()
	if cur.Rotation != 2 || cur.X != 6 {
		t.Errorf("after kick: %+v, expected X=6 Rotation=2", cur)
	}
}

func TestTickMovesDownThenLocks(t *testing.T) {
	e := newTestEngine(PieceO, PieceT)
	e.Start()

	e.Tick()
	cur, _ := e.Current()
	if cur.Y != 1 {
		t.Fatalf("Y = %d after one tick, expected 1", cur.Y)
	}

	for range Height {
		e.Tick()
	}
	if e.PiecesLocked() != 1 {
		t.Fatalf("PiecesLocked = %d, expected 1", e.PiecesLocked())
	}
	g := e.Grid()
	for _, pt := range []Point{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		if g.At(pt.X, pt.Y) != CellOf(PieceO) {
			t.Errorf("cell %v = %v, expected O", pt, g.At(pt.X, pt.Y))
		}
	}
	cur, _ = e.Current()
	if cur.Type != PieceT {
		t.Errorf("promoted piece = %s, expected T", cur.Type)
	}
}

func TestHardDropMatchesTicks(t *testing.T) {
	seq := []PieceType{PieceT, PieceS, PieceI, PieceL, PieceZ, PieceJ, PieceO}
	moves := []func(e *Engine){
		func(e *Engine) { e.MoveLeft(); e.MoveLeft() },
		func(e *Engine) { e.Rotate(); e.MoveRight() },
		func(e *Engine) {},
		func(e *Engine) { e.Rotate(); e.Rotate(); e.MoveRight(); e.MoveRight(); e.MoveRight() },
		func(e *Engine) { e.MoveLeft() },
		func(e *Engine) { e.Rotate(); e.MoveLeft(); e.MoveLeft(); e.MoveLeft() },
		func(e *Engine) { e.MoveRight() },
	}

	hard := newTestEngine(seq...)
	soft := newTestEngine(seq...)
	hard.Start()
	soft.Start()

	for i, move := range moves {
		move(hard)
		move(soft)

		hard.HardDrop()
		for locked := soft.PiecesLocked(); soft.PiecesLocked() == locked; {
			soft.Tick()
		}

		if hard.Grid() != soft.Grid() {
			t.Fatalf("piece %d: hard drop and ticks disagree on resting position", i)
		}
	}
}

func TestHardDropScoresDistance(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()
	e.HardDrop()

	if e.Score() != 2*(Height-2) {
		t.Errorf("Score = %d, expected %d", e.Score(), 2*(Height-2))
	}
	if e.PiecesLocked() != 1 {
		t.Errorf("PiecesLocked = %d, expected 1", e.PiecesLocked())
	}
}

func TestSingleLineClear(t *testing.T) {
	e := newTestEngine(PieceI)
	e.Start()
	for _, x := range []int{0, 1, 2, 7, 8, 9} {
		e.grid[Height-1][x] = CellOf(PieceJ)
	}

	e.HardDrop()

	if e.Lines() != 1 {
		t.Errorf("Lines = %d, expected 1", e.Lines())
	}
	if want := 18*2 + 100; e.Score() != want {
		t.Errorf("Score = %d, expected %d", e.Score(), want)
	}
	if e.Grid().Filled() != 0 {
		t.Errorf("grid should be empty after clear, has %d cells", e.Grid().Filled())
	}
	if ll := e.LastLock(); ll.LinesCleared != 1 || ll.Points != 100 {
		t.Errorf("LastLock = %+v, expected 1 line for 100 points", ll)
	}
}

func TestFourLineClear(t *testing.T) {
	e := newTestEngine(PieceI)
	e.Start()
	for y := Height - 4; y < Height; y++ {
		for x := range Width - 1 {
			e.grid[y][x] = CellOf(PieceL)
		}
	}

	e.Rotate()
	for range 4 {
		e.MoveRight()
	}
	e.HardDrop()

	if e.Lines() != 4 {
		t.Errorf("Lines = %d, expected 4", e.Lines())
	}
	if want := 16*2 + 800; e.Score() != want {
		t.Errorf("Score = %d, expected %d", e.Score(), want)
	}
}

func TestLevelMultiplierUsesPreClearLevel(t *testing.T) {
	e := newTestEngine(PieceI)
	e.Start()
	e.lines = 19
	e.level = 2
	for _, x := range []int{0, 1, 2, 7, 8, 9} {
		e.grid[Height-1][x] = CellOf(PieceJ)
	}

	e.HardDrop()

	if e.Level() != 3 {
		t.Errorf("Level = %d, expected 3", e.Level())
	}
	if ll := e.LastLock(); ll.Points != 200 || !ll.LeveledUp() {
		t.Errorf("LastLock = %+v, expected 200 points and a level up", ll)
	}
}

func TestLevelMultiplierNone(t *testing.T) {
	rules := DefaultRules()
	rules.Multiplier = MultiplyNone
	e := New(rules, NewSequenceSource(PieceI))
	e.Start()
	e.level = 5
	e.lines = 40
	for _, x := range []int{0, 1, 2, 7, 8, 9} {
		e.grid[Height-1][x] = CellOf(PieceJ)
	}

	e.HardDrop()
	if ll := e.LastLock(); ll.Points != 100 {
		t.Errorf("Points = %d, expected 100 without multiplier", ll.Points)
	}
}

func TestLevelFollowsLines(t *testing.T) {
	r := DefaultRules()
	tests := []struct{ lines, level int }{
		{0, 1}, {9, 1}, {10, 2}, {19, 2}, {20, 3}, {105, 11},
	}
	for _, tc := range tests {
		if got := r.LevelFor(tc.lines); got != tc.level {
			t.Errorf("LevelFor(%d) = %d, expected %d", tc.lines, got, tc.level)
		}
	}
}

func TestLineClearPoints(t *testing.T) {
	r := DefaultRules()
	tests := []struct{ n, points int }{
		{0, 0}, {1, 100}, {2, 300}, {3, 500}, {4, 800}, {5, 1000}, {6, 1200},
	}
	for _, tc := range tests {
		if got := r.LineClearPoints(tc.n); got != tc.points {
			t.Errorf("LineClearPoints(%d) = %d, expected %d", tc.n, got, tc.points)
		}
	}
	if got := r.ClearScore(2, 3); got != 900 {
		t.Errorf("ClearScore(2, 3) = %d, expected 900", got)
	}
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()
	for y := 2; y < Height; y++ {
		e.grid[y][4] = CellOf(PieceJ)
		e.grid[y][5] = CellOf(PieceJ)
	}

	e.Tick()

	s := e.Snapshot()
	if s.Status != StatusGameOver {
		t.Fatalf("Status = %v, expected gameover", s.Status)
	}
	if s.Current != nil || s.Next != nil {
		t.Error("game over should clear both piece slots")
	}
	if !e.LastLock().ToppedOut {
		t.Error("LastLock should report top-out")
	}

	// Nothing but Start or Reset leaves game over.
	e.Resume()
	e.Pause()
	e.Tick()
	if e.Status() != StatusGameOver {
		t.Errorf("Status = %v, expected gameover to persist", e.Status())
	}
	e.Start()
	if e.Status() != StatusPlaying {
		t.Errorf("Start after game over: status = %v, expected playing", e.Status())
	}
}

func TestSnapshotGhostAndCells(t *testing.T) {
	e := newTestEngine(PieceO)
	e.Start()
	s := e.Snapshot()

	if len(s.CurrentCells) != 4 || len(s.GhostCells) != 4 {
		t.Fatalf("cells = %d, ghost = %d, expected 4 each", len(s.CurrentCells), len(s.GhostCells))
	}
	for _, c := range s.GhostCells {
		if c.Y < Height-2 {
			t.Errorf("ghost cell %v should rest on the floor", c)
		}
	}
	if s.Composite().Filled() != 4 {
		t.Errorf("Composite().Filled() = %d, expected 4", s.Composite().Filled())
	}

	s.Current.X = 0
	if cur, _ := e.Current(); cur.X == 0 {
		t.Error("modifying the snapshot leaked into the engine")
	}
}

func TestSpeedLinear(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 900 * time.Millisecond},
		{5, 600 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{30, 100 * time.Millisecond},
		{0, 1000 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := r.Speed(tc.level); got != tc.want {
			t.Errorf("Speed(%d) = %v, expected %v", tc.level, got, tc.want)
		}
	}
}

func TestSpeedMonotonicAndFloored(t *testing.T) {
	for _, curve := range []SpeedCurve{CurveLinear, CurveExponential} {
		r := DefaultRules()
		r.Curve = curve
		prev := r.Speed(1)
		for level := 2; level <= 50; level++ {
			cur := r.Speed(level)
			if cur > prev {
				t.Errorf("%s: Speed(%d)=%v > Speed(%d)=%v", curve, level, cur, level-1, prev)
			}
			if cur < r.MinInterval {
				t.Errorf("%s: Speed(%d)=%v below floor %v", curve, level, cur, r.MinInterval)
			}
			prev = cur
		}
	}
}

func TestSpeedExponential(t *testing.T) {
	r := DefaultRules()
	r.Curve = CurveExponential
	got := r.Speed(2)
	if diff := got - 850*time.Millisecond; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("Speed(2) = %v, expected about 850ms", got)
	}
}

func TestSpeedFrozen(t *testing.T) {
	r := DefaultRules()
	r.FreezeSpeed = true
	if r.Speed(9) != r.Speed(1) {
		t.Errorf("frozen Speed(9) = %v, expected %v", r.Speed(9), r.Speed(1))
	}
}

func TestDeterministicRandomSource(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)
	for i := range 100 {
		x, y := a.Next(), b.Next()
		if x != y {
			t.Fatalf("draw %d: %s vs %s with equal seeds", i, x, y)
		}
		if !x.Valid() {
			t.Fatalf("draw %d: invalid type %d", i, x)
		}
	}
}
