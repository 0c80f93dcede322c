// Package blockfall hosts the falling-block engine on the terminal platform.
// It owns the gravity timer, maps input frames to engine commands and
// draws the board into a core.Screen.
package blockfall

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode selects the gravity curve of a game.
type Mode string

const (
	ModeClassic Mode = "blockfall"
	ModeTurbo   Mode = "blockfall_turbo"
)

// Game implements registry.Game around an engine.Engine.
type Game struct {
	mode   Mode
	cfg    config.BlockfallConfig
	logger *log.Logger

	eng     *engine.Engine
	runtime core.RuntimeConfig
	frame   time.Duration // wall time per Step
	elapsed time.Duration // time since the last gravity tick
	tick    uint64

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic game with the default configuration.
func New() *Game {
	return newGame(ModeClassic)
}

// NewTurbo creates a game that always uses the exponential curve.
func NewTurbo() *Game {
	return newGame(ModeTurbo)
}

func newGame(mode Mode) *Game {
	return &Game{
		mode:   mode,
		cfg:    config.DefaultBlockfallConfig(),
		logger: log.New(io.Discard),
	}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeTurbo), func() registry.Game {
		return NewTurbo()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeTurbo {
		return "Blockfall (Turbo)"
	}
	return "Blockfall"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeTurbo {
		return "Gravity shrinks exponentially with each level"
	}
	return "Classic falling blocks, speed curve from config"
}

// Configure loads the YAML config, applies a difficulty preset and sets
// the event logger.
func (g *Game) Configure(opts registry.Options) error {
	cfg, err := config.LoadBlockfall(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Difficulty != "" {
		preset, err := config.ParsePreset(opts.Difficulty)
		if err != nil {
			return err
		}
		config.ApplyBlockfallPreset(&cfg, preset)
	}
	g.SetConfig(cfg)
	if opts.Logger != nil {
		g.logger = opts.Logger.WithPrefix(g.ID())
	}
	return nil
}

// SetConfig replaces the configuration used by the next Reset.
func (g *Game) SetConfig(cfg config.BlockfallConfig) {
	g.cfg = cfg
}

// Rules returns the engine rules derived from the config and mode.
func (g *Game) Rules() engine.Rules {
	return RulesFromConfig(g.cfg, g.mode)
}

// RulesFromConfig converts a loaded config into engine rules.
func RulesFromConfig(cfg config.BlockfallConfig, mode Mode) engine.Rules {
	dm := config.NewDifficultyManager(cfg.Difficulty)

	r := engine.Rules{
		LinePoints:      append([]int(nil), cfg.Scoring.LinePoints...),
		ExtraLinePoints: cfg.Scoring.ExtraLinePoints,
		Multiplier:      engine.MultiplierPolicy(cfg.Scoring.Multiplier),
		HardDropPerRow:  cfg.Scoring.HardDropPerRow,
		SoftDropPerRow:  cfg.Scoring.SoftDropPerRow,
		LinesPerLevel:   cfg.Rules.LinesPerLevel,
		Curve:           engine.SpeedCurve(cfg.Speed.Curve),
		BaseInterval:    dm.Scale(cfg.Speed.Base()),
		StepInterval:    dm.Scale(cfg.Speed.Step()),
		DecayFactor:     cfg.Speed.DecayFactor,
		MinInterval:     dm.Scale(cfg.Speed.Min()),
		FreezeSpeed:     !dm.IsEnabled(),
	}
	if mode == ModeTurbo {
		r.Curve = engine.CurveExponential
	}
	return r
}

// Reset builds a fresh engine in the idle state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.frame = cfg.FrameDuration()
	g.elapsed = 0
	g.tick = 0
	g.eng = engine.New(g.Rules(), engine.NewRandomSource(cfg.Seed))
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	started := false
	switch g.eng.Status() {
	case engine.StatusIdle:
		if in.Has(core.ActionConfirm) {
			started = g.start()
		}
	case engine.StatusGameOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			started = g.start()
		}
	case engine.StatusPaused:
		if in.Has(core.ActionPause) {
			g.eng.Resume()
		}
	case engine.StatusPlaying:
		if in.Has(core.ActionPause) {
			g.eng.Pause()
			break
		}
		g.applyInput(in)
		g.gravity()
	}

	return core.StepResult{State: g.State(), Started: started}
}

func (g *Game) start() bool {
	g.eng.Start()
	g.elapsed = 0
	g.logger.Debug("game started", "seed", g.runtime.Seed, "speed", g.eng.Speed())
	return true
}

// applyInput replays every press recorded in the frame, in a fixed order.
func (g *Game) applyInput(in core.InputFrame) {
	for range in.Count(core.ActionLeft) {
		g.eng.MoveLeft()
	}
	for range in.Count(core.ActionRight) {
		g.eng.MoveRight()
	}
	for range in.Count(core.ActionRotate) {
		g.eng.Rotate()
	}
	for range in.Count(core.ActionSoftDrop) {
		g.observe(g.eng.SoftDrop)
	}
	if in.Has(core.ActionHardDrop) {
		g.observe(g.eng.HardDrop)
	}
}

// gravity issues as many ticks as the elapsed time covers. The interval
// is re-read after every tick so a level up takes effect at once.
func (g *Game) gravity() {
	if g.eng.Status() != engine.StatusPlaying {
		return
	}
	g.elapsed += g.frame
	for g.eng.Status() == engine.StatusPlaying {
		interval := g.eng.Speed()
		if g.elapsed < interval {
			return
		}
		g.elapsed -= interval
		g.observe(g.eng.Tick)
	}
}

// observe runs cmd and logs any lock it caused.
func (g *Game) observe(cmd func()) {
	before := g.eng.PiecesLocked()
	cmd()
	if g.eng.PiecesLocked() == before {
		return
	}

	res := g.eng.LastLock()
	if res.LinesCleared > 0 {
		g.logger.Debug("lines cleared", "lines", res.LinesCleared, "points", res.Points, "score", g.eng.Score())
	}
	if res.LeveledUp() {
		g.logger.Debug("level up", "level", res.LevelAfter, "speed", g.eng.Speed())
	}
	if res.ToppedOut {
		g.logger.Debug("game over", "score", g.eng.Score(), "lines", g.eng.Lines(), "pieces", g.eng.PiecesLocked())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	status := g.eng.Status()
	return core.GameState{
		Score:    g.eng.Score(),
		Playing:  status == engine.StatusPlaying && !g.tooSmall,
		GameOver: status == engine.StatusGameOver,
		Paused:   status == engine.StatusPaused || g.tooSmall,
	}
}
