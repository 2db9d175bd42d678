package stack

import (
	"errors"
	"fmt"
	"time"
)

// Design defaults.
const (
	DefaultMoveSpeed        = 2.4
	DefaultMoveRange        = 1.6
	DefaultLayerHeight      = 0.2
	DefaultHueStep          = 6.0
	DefaultBaseLayersBottom = 12
	DefaultBaseLayersTop    = 3
	DefaultResetDelay       = time.Second
)

// Config holds the tunables of a session.
type Config struct {
	MoveSpeed        float64       // World units per second
	MoveRange        float64       // Travel bound on either side of the origin
	LayerHeight      float64       // Thickness of one layer
	Epsilon          float64       // Alignment tolerance for a perfect drop
	HueStep          float64       // Degrees of hue between consecutive layers
	BaseLayersBottom int           // Thickness in layers of the lower seed block
	BaseLayersTop    int           // Thickness in layers of the upper seed block
	ResetDelay       time.Duration // Time after game over before a tap may reset
	Seed             int64         // Seed for the default random source
}

// DefaultConfig returns the design defaults.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:        DefaultMoveSpeed,
		MoveRange:        DefaultMoveRange,
		LayerHeight:      DefaultLayerHeight,
		Epsilon:          DefaultEpsilon,
		HueStep:          DefaultHueStep,
		BaseLayersBottom: DefaultBaseLayersBottom,
		BaseLayersTop:    DefaultBaseLayersTop,
		ResetDelay:       DefaultResetDelay,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.MoveSpeed <= 0:
		return fmt.Errorf("stack: move speed must be positive, got %v", c.MoveSpeed)
	case c.MoveRange <= 0:
		return fmt.Errorf("stack: move range must be positive, got %v", c.MoveRange)
	case c.LayerHeight <= 0:
		return fmt.Errorf("stack: layer height must be positive, got %v", c.LayerHeight)
	case c.Epsilon < 0:
		return fmt.Errorf("stack: epsilon must not be negative, got %v", c.Epsilon)
	case c.BaseLayersBottom < 0 || c.BaseLayersTop < 0:
		return errors.New("stack: base layers must not be negative")
	case c.ResetDelay < 0:
		return fmt.Errorf("stack: reset delay must not be negative, got %v", c.ResetDelay)
	}
	return nil
}

// BaseLayer is the layer the lower seed block starts on.
// The seed blocks together bring the layer count back up to zero.
func (c Config) BaseLayer() int {
	return -(c.BaseLayersBottom + c.BaseLayersTop)
}

// Phase is the stage of a session.
type Phase int

const (
	PhaseInit     Phase = iota // Waiting for the first tap
	PhasePlaying               // Block moving, taps drop it
	PhaseGameOver              // Missed; taps reset once allowed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Clock supplies wall-clock time for the reset delay.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Machine.
type Option func(*Machine)

// WithObserver sets the receiver of game events.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithRand sets the random source used for hue seeds.
// The default is NewRand(cfg.Seed).
func WithRand(r Random) Option {
	return func(m *Machine) {
		m.rng = r
	}
}

// WithClock sets the clock used for the reset delay.
func WithClock(c Clock) Option {
	return func(m *Machine) {
		if c != nil {
			m.clock = c
		}
	}
}

// Snapshot is a copy of the state a presentation layer needs to draw a frame.
type Snapshot struct {
	Phase         Phase
	Current       Block
	Previous      Block
	MoveAxis      Axis
	MoveDirection int
	Layer         int
	Combo         int
	AllowReset    bool
	HueOffset     int
	HueDirection  int
}

// Machine drives a session from the first tap through game over and reset.
// It is not safe for concurrent use; the host calls Tap and Advance from one
// goroutine.
type Machine struct {
	cfg      Config
	rng      Random
	clock    Clock
	observer Observer
	factory  *Factory

	phase         Phase
	current       Block
	previous      Block
	moveAxis      Axis
	moveDirection int
	moveSpeed     float64
	layer         int
	combo         int
	allowReset    bool
	gameOverAt    time.Time
}

// New creates a machine in the Init phase and emits OnInit.
// It panics if cfg is invalid; callers loading user config should Validate first.
func New(cfg Config, opts ...Option) *Machine {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	m := &Machine{
		cfg:       cfg,
		clock:     systemClock{},
		observer:  NopObserver{},
		moveSpeed: cfg.MoveSpeed,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = NewRand(cfg.Seed)
	}
	m.factory = newFactory(cfg)

	m.init()
	return m
}

// init builds a fresh session: new hue seed, two seed blocks, Init phase.
func (m *Machine) init() {
	m.factory.Reseed(m.rng)

	m.phase = PhaseInit
	m.layer = m.cfg.BaseLayer()
	m.previous = m.factory.SeedBlock(m.layer, m.cfg.BaseLayersBottom)
	m.layer += m.cfg.BaseLayersBottom
	m.current = m.factory.SeedBlock(m.layer, m.cfg.BaseLayersTop)
	m.layer += m.cfg.BaseLayersTop

	m.moveAxis = AxisX
	m.moveDirection = 1
	m.moveSpeed = m.cfg.MoveSpeed
	m.combo = 0
	m.allowReset = false
	m.gameOverAt = time.Time{}

	m.observer.OnInit()
}

// Tap handles one player input.
//
// In Init it starts the game and spawns the first moving block. In Playing it
// drops the moving block and, unless it missed, spawns the next one. In
// GameOver it resets the session once the reset delay has elapsed and is
// ignored before that.
func (m *Machine) Tap() {
	switch m.phase {
	case PhaseGameOver:
		if m.AllowReset() {
			m.init()
		}
		return
	case PhaseInit:
		m.phase = PhasePlaying
		m.combo = 0
		m.observer.OnStart()
	case PhasePlaying:
		if !m.drop() {
			return
		}
	}
	m.spawn()
}

// drop resolves the moving block and reports whether play continues.
func (m *Machine) drop() bool {
	streak := m.combo
	out := Resolve(&m.current, m.previous, m.moveAxis, m.cfg.Epsilon)
	res := Resolution{
		Kind:   out.Kind,
		Axis:   m.moveAxis,
		Block:  m.current,
		Debris: out.Debris,
		Combo:  streak,
	}

	switch out.Kind {
	case Perfect:
		m.combo++
	case Partial:
		m.combo = 0
	case Miss:
		m.phase = PhaseGameOver
		m.allowReset = false
		m.gameOverAt = m.clock.Now()
		m.observer.OnResolve(res)
		m.observer.OnGameOver(m.layer)
		return false
	}

	m.observer.OnResolve(res)
	return true
}

// spawn flips the move axis and puts a new block on top of the current one.
func (m *Machine) spawn() {
	m.moveAxis = m.moveAxis.Other()
	m.previous = m.current
	m.current = m.factory.Next(m.previous, m.moveAxis, m.layer)
	m.layer++
	m.observer.OnScoreChange(m.layer)
}

// Advance moves the active block by dt seconds, bouncing at the travel bounds.
// It does nothing outside the Playing phase.
func (m *Machine) Advance(dt float64) {
	if m.phase != PhasePlaying {
		return
	}

	limit := m.cfg.MoveRange
	pos := m.current.Position.Get(m.moveAxis) + m.moveSpeed*float64(m.moveDirection)*dt
	if pos > limit {
		pos = limit
		m.moveDirection = -m.moveDirection
	} else if pos < -limit {
		pos = -limit
		m.moveDirection = -m.moveDirection
	}
	m.current.Position = m.current.Position.With(m.moveAxis, pos)
}

// AllowReset reports whether a tap would reset the session.
// The flag latches once the reset delay has elapsed after game over.
func (m *Machine) AllowReset() bool {
	if m.phase != PhaseGameOver {
		return false
	}
	if !m.allowReset && m.clock.Now().Sub(m.gameOverAt) >= m.cfg.ResetDelay {
		m.allowReset = true
	}
	return m.allowReset
}

// SetMoveSpeed changes the travel speed, e.g. for difficulty progression.
// Non-positive values are ignored.
func (m *Machine) SetMoveSpeed(speed float64) {
	if speed > 0 {
		m.moveSpeed = speed
	}
}

// MoveSpeed returns the current travel speed.
func (m *Machine) MoveSpeed() float64 { return m.moveSpeed }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Layer returns the number of placed layers, which is also the score.
func (m *Machine) Layer() int { return m.layer }

// Combo returns the current perfect streak.
func (m *Machine) Combo() int { return m.combo }

// MoveAxis returns the axis the active block travels along.
func (m *Machine) MoveAxis() Axis { return m.moveAxis }

// Current returns a copy of the active block.
func (m *Machine) Current() Block { return m.current }

// Previous returns a copy of the block below the active one.
func (m *Machine) Previous() Block { return m.previous }

// Config returns the session configuration.
func (m *Machine) Config() Config { return m.cfg }

// Hue returns the color the factory assigns to a layer index this session.
func (m *Machine) Hue(layer int) float64 { return m.factory.Hue(layer) }

// Snapshot returns a copy of the drawable state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Phase:         m.phase,
		Current:       m.current,
		Previous:      m.previous,
		MoveAxis:      m.moveAxis,
		MoveDirection: m.moveDirection,
		Layer:         m.layer,
		Combo:         m.combo,
		AllowReset:    m.AllowReset(),
		HueOffset:     m.factory.HueOffset(),
		HueDirection:  m.factory.HueDirection(),
	}
}
