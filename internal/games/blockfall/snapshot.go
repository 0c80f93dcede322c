package blockfall

import "github.com/vovakirdan/blockfall/internal/games/blockfall/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateIdle        GameStateType = "idle"
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Mode   string
	State  GameStateType
	Engine engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick: g.tick,
		Mode: string(g.mode),
	}
	if g.eng == nil {
		s.State = StateIdle
		return s
	}
	s.Engine = g.eng.Snapshot()

	switch {
	case g.tooSmall:
		s.State = StatePausedSmall
	case s.Engine.Status == engine.StatusPlaying:
		s.State = StatePlaying
	case s.Engine.Status == engine.StatusPaused:
		s.State = StatePaused
	case s.Engine.Status == engine.StatusGameOver:
		s.State = StateGameOver
	default:
		s.State = StateIdle
	}
	return s
}
