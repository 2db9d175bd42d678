// Package tower implements the stack-the-block arcade game.
// It adapts the stack state machine to the platform's Game interface and owns
// the presentation: tower history, falling debris, ripples and the camera.
package tower

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/registry"
	"github.com/vovakirdan/tui-stack/internal/stack"
)

// perfectBannerTime is how long the PERFECT banner stays up, in seconds.
const perfectBannerTime = 1.0

// Variant selects how a game tunes the loaded configuration.
type Variant int

const (
	VariantClassic Variant = iota // Config as loaded, CLI difficulty preset applies
	VariantZen                    // Slower, wider perfect window, no progression
	VariantHard                   // Hard preset regardless of CLI flags
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for the classic variant.
// An empty preset keeps the configured difficulty.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the stack game for the platform.
type Game struct {
	variant Variant
	host    registry.Host
	logger  *log.Logger

	runtime    core.RuntimeConfig
	cfg        config.StackConfig
	difficulty *config.DifficultyManager
	machine    *stack.Machine
	events     *stack.Recorder
	clock      *tickClock
	highScores *stack.HighScores

	tower   []stack.Block // Settled blocks, bottom first
	effects Effects
	camera  *Camera

	paused    bool
	playTicks int
	perfects  int
	bestCombo int
	best      int
	record    *stack.Record // Verdict on the last finished game
	banner    float64       // Seconds left on the PERFECT banner
}

// New creates the classic game.
func New() *Game {
	return &Game{variant: VariantClassic, camera: NewCamera()}
}

// NewZen creates the relaxed variant.
func NewZen() *Game {
	return &Game{variant: VariantZen, camera: NewCamera()}
}

// NewHard creates the hard variant.
func NewHard() *Game {
	return &Game{variant: VariantHard, camera: NewCamera()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.variant {
	case VariantZen:
		return "stack_zen"
	case VariantHard:
		return "stack_hard"
	default:
		return "stack"
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.variant {
	case VariantZen:
		return "Stack (Zen)"
	case VariantHard:
		return "Stack (Hard)"
	default:
		return "Stack"
	}
}

// Attach implements registry.Hosted.
func (g *Game) Attach(h registry.Host) {
	g.host = h
}

// Reset loads the configuration and starts a fresh session in the Init phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = g.host.Logger
	if g.logger == nil {
		g.logger = log.New(discard{})
	}
	g.logger = g.logger.With("game", g.ID())
	if g.host.SessionID != "" {
		g.logger = g.logger.With("session", g.host.SessionID)
	}

	cfg, src, err := config.LoadStack(configPath)
	if err != nil {
		g.logger.Warn("cannot load config, using defaults", "err", err)
		cfg = config.DefaultStackConfig()
	} else {
		g.logger.Debug("config loaded", "source", src)
	}
	g.cfg = g.tune(cfg)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	kv := g.host.Settings
	if kv == nil {
		kv = stack.NewMemoryKV()
	}
	g.highScores = stack.NewHighScores(kv)
	if best, err := g.highScores.Best(); err != nil {
		g.logger.Warn("cannot read high score", "err", err)
	} else {
		g.best = best
	}

	g.clock = newTickClock(runtime.TickRate)
	g.events = &stack.Recorder{}
	observers := stack.Observers{g.events, NewLogObserver(g.logger)}
	observers = append(observers, g.host.Observers...)

	g.paused = false
	g.machine = stack.New(
		g.cfg.MachineConfig(runtime.Seed),
		stack.WithObserver(observers),
		stack.WithClock(g.clock),
	)
	g.drain()
}

// tune applies the variant and CLI preset to a loaded configuration.
func (g *Game) tune(cfg config.StackConfig) config.StackConfig {
	switch g.variant {
	case VariantZen:
		config.ApplyStackPreset(&cfg, config.DifficultyFixed)
		cfg.Physics.MoveSpeed *= 0.75
		cfg.Physics.Epsilon *= 2
	case VariantHard:
		config.ApplyStackPreset(&cfg, config.DifficultyHard)
	default:
		if difficultyPreset != "" {
			config.ApplyStackPreset(&cfg, difficultyPreset)
		}
	}
	return cfg
}

// Step advances the game by one tick: move the block, then apply taps.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.machine.Phase() != stack.PhaseGameOver {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickSeconds()
	g.clock.Tick()
	if g.machine.Phase() == stack.PhasePlaying {
		g.playTicks++
	}
	g.machine.Advance(dt)

	for i := 0; i < in.Count(core.ActionTap); i++ {
		g.machine.Tap()
	}
	g.drain()

	g.effects.Update(dt)
	g.camera.Update(dt)
	if g.banner > 0 {
		g.banner -= dt
	}

	return core.StepResult{State: g.State()}
}

// drain applies queued machine events to the presentation state.
func (g *Game) drain() {
	for _, e := range g.events.Drain() {
		switch e.Kind {
		case stack.EventInit:
			g.onInit()
		case stack.EventResolve:
			g.onResolve(*e.Resolution)
		case stack.EventScoreChange:
			g.camera.Follow(e.Score)
			g.machine.SetMoveSpeed(g.difficulty.Speed(g.cfg.Physics.MoveSpeed, e.Score, g.playTicks))
		case stack.EventGameOver:
			g.onGameOver(e.Score)
		}
	}
}

func (g *Game) onInit() {
	g.tower = append(g.tower[:0], g.machine.Previous(), g.machine.Current())
	g.effects.Clear()
	g.camera.Reset()
	g.playTicks = 0
	g.perfects = 0
	g.bestCombo = 0
	g.record = nil
	g.banner = 0
}

func (g *Game) onResolve(r stack.Resolution) {
	switch r.Kind {
	case stack.Perfect:
		g.tower = append(g.tower, r.Block)
		g.effects.AddRipple(r.Block, r.Combo)
		g.perfects++
		g.bestCombo = max(g.bestCombo, r.Combo+1)
		g.banner = perfectBannerTime
	case stack.Partial:
		g.tower = append(g.tower, r.Block)
		g.effects.AddDebris(*r.Debris)
	case stack.Miss:
		g.effects.AddDebris(r.Block)
	}
}

func (g *Game) onGameOver(score int) {
	g.camera.Preview(score)

	rec, err := g.highScores.Check(score)
	if err != nil {
		g.logger.Warn("cannot update high score", "err", err)
		rec = stack.Record{Score: score, Best: max(g.best, score)}
	}
	if rec.NewRecord {
		g.logger.Info("new record", "score", score, "previous", g.best)
	}
	g.best = rec.Best
	g.record = &rec
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.machine.Layer(),
		Best:      g.best,
		Combo:     g.machine.Combo(),
		Perfects:  g.perfects,
		BestCombo: g.bestCombo,
		PlayTicks: g.playTicks,
		GameOver:  g.machine.Phase() == stack.PhaseGameOver,
		Paused:    g.paused,
	}
}

// Snapshot exposes the machine state, e.g. for tests and the autoplayer.
func (g *Game) Snapshot() stack.Snapshot {
	return g.machine.Snapshot()
}

// Record returns the high-score verdict of the last finished game, or nil
// while a game is in progress.
func (g *Game) Record() *stack.Record {
	return g.record
}

// Tower returns the settled blocks, bottom first.
func (g *Game) Tower() []stack.Block {
	return g.tower
}

// discard is an io.Writer sink for the fallback logger.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func init() {
	registry.Register("stack", func() registry.Game {
		return New()
	})
	registry.Register("stack_zen", func() registry.Game {
		return NewZen()
	})
	registry.Register("stack_hard", func() registry.Game {
		return NewHard()
	})
}
