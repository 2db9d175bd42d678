package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

//go:embed defaults/stack.yaml
var defaultStackYAML []byte

// DefaultStackConfig returns the default stack configuration.
// It matches defaults/stack.yaml and is the fallback if the embed cannot be parsed.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		Physics: StackPhysics{
			MoveSpeed: stack.DefaultMoveSpeed,
			MoveRange: stack.DefaultMoveRange,
			Epsilon:   stack.DefaultEpsilon,
		},
		Layout: StackLayout{
			LayerHeight:      stack.DefaultLayerHeight,
			BaseLayersBottom: stack.DefaultBaseLayersBottom,
			BaseLayersTop:    stack.DefaultBaseLayersTop,
		},
		Colors: StackColors{
			HueStep:    stack.DefaultHueStep,
			Saturation: 0.5,
			Lightness:  0.5,
		},
		Timing: StackTiming{
			ResetDelayMS: int(stack.DefaultResetDelay.Milliseconds()),
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, as printed by `stack config --defaults`.
func DefaultYAML() []byte {
	return defaultStackYAML
}
