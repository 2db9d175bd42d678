// Package config provides YAML-based game configuration loading and
// difficulty management for the stack game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

// StackConfig contains all configuration for the stack game.
type StackConfig struct {
	Physics    StackPhysics     `yaml:"physics"`
	Layout     StackLayout      `yaml:"layout"`
	Colors     StackColors      `yaml:"colors"`
	Timing     StackTiming      `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StackPhysics defines how the moving block travels and how drops are judged.
type StackPhysics struct {
	MoveSpeed float64 `yaml:"move_speed"` // World units per second
	MoveRange float64 `yaml:"move_range"` // Travel bound on either side of the tower
	Epsilon   float64 `yaml:"epsilon"`    // Alignment tolerance for a perfect drop
}

// StackLayout defines the tower geometry.
type StackLayout struct {
	LayerHeight      float64 `yaml:"layer_height"`
	BaseLayersBottom int     `yaml:"base_layers_bottom"`
	BaseLayersTop    int     `yaml:"base_layers_top"`
}

// StackColors defines the block color progression.
type StackColors struct {
	HueStep    float64 `yaml:"hue_step"`   // Degrees between consecutive layers
	Saturation float64 `yaml:"saturation"` // HSL saturation, 0-1
	Lightness  float64 `yaml:"lightness"`  // HSL lightness, 0-1
}

// StackTiming defines session timing.
type StackTiming struct {
	ResetDelayMS int `yaml:"reset_delay_ms"` // Delay after game over before a tap resets
}

// ResetDelay returns the reset delay as a duration.
func (t StackTiming) ResetDelay() time.Duration {
	return time.Duration(t.ResetDelayMS) * time.Millisecond
}

// Validate reports every invalid field of the configuration.
func (c StackConfig) Validate() error {
	var errs []error
	if c.Physics.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.move_speed must be positive, got %v", c.Physics.MoveSpeed))
	}
	if c.Physics.MoveRange <= 0 {
		errs = append(errs, fmt.Errorf("physics.move_range must be positive, got %v", c.Physics.MoveRange))
	}
	if c.Physics.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("physics.epsilon must not be negative, got %v", c.Physics.Epsilon))
	}
	if c.Layout.LayerHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout.layer_height must be positive, got %v", c.Layout.LayerHeight))
	}
	if c.Layout.BaseLayersBottom < 0 || c.Layout.BaseLayersTop < 0 {
		errs = append(errs, errors.New("layout.base_layers_* must not be negative"))
	}
	if c.Colors.Saturation < 0 || c.Colors.Saturation > 1 || c.Colors.Lightness < 0 || c.Colors.Lightness > 1 {
		errs = append(errs, errors.New("colors.saturation and colors.lightness must be within [0, 1]"))
	}
	if c.Timing.ResetDelayMS < 0 {
		errs = append(errs, fmt.Errorf("timing.reset_delay_ms must not be negative, got %d", c.Timing.ResetDelayMS))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be within [0, 1], got %v", c.Difficulty.InitialLevel))
	}
	switch c.Difficulty.Progression.Type {
	case "", ProgressionScore, ProgressionTime, ProgressionNone:
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid stack config: %w", errors.Join(errs...))
}

// MachineConfig converts the file configuration into the game core's tunables.
func (c StackConfig) MachineConfig(seed int64) stack.Config {
	return stack.Config{
		MoveSpeed:        c.Physics.MoveSpeed,
		MoveRange:        c.Physics.MoveRange,
		LayerHeight:      c.Layout.LayerHeight,
		Epsilon:          c.Physics.Epsilon,
		HueStep:          c.Colors.HueStep,
		BaseLayersBottom: c.Layout.BaseLayersBottom,
		BaseLayersTop:    c.Layout.BaseLayersTop,
		ResetDelay:       c.Timing.ResetDelay(),
		Seed:             seed,
	}
}

// Progression types.
const (
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyStackPreset modifies the config based on a difficulty preset.
func ApplyStackPreset(cfg *StackConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == ProgressionNone {
		cfg.Difficulty.Progression.Type = ProgressionScore
	}

	// Tolerance follows the preset too
	switch preset {
	case DifficultyEasy:
		cfg.Physics.Epsilon = stack.DefaultEpsilon * 1.5
	case DifficultyHard:
		cfg.Physics.Epsilon = stack.DefaultEpsilon * 0.5
	}
}
