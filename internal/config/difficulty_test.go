package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyDisabledKeepsBaseSpeed(t *testing.T) {
	d := NewDifficultyManager(DefaultStackConfig().Difficulty)

	assert.False(t, d.IsEnabled())
	for _, score := range []int{0, 10, 1000} {
		assert.Equal(t, 2.4, d.Speed(2.4, score, score*60))
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressionScore, MaxAt: 50},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		level float64
		speed float64
	}{
		{0, 0, 2},
		{25, 0.5, 3},
		{50, 1, 4},
		{500, 1, 4},
	}

	for _, tc := range tests {
		assert.InDelta(t, tc.level, d.Level(tc.score, 0), 1e-12, "score %d", tc.score)
		assert.InDelta(t, tc.speed, d.Speed(2, tc.score, 0), 1e-12, "score %d", tc.score)
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: ProgressionScore, MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 2.0},
	}
	d := NewDifficultyManager(cfg)

	assert.InDelta(t, 0.5, d.Level(0, 0), 1e-12)
	assert.InDelta(t, 0.75, d.Level(5, 0), 1e-12)

	d.SetInitialLevel(3)
	assert.InDelta(t, 1.0, d.Level(0, 0), 1e-12, "initial level is clamped")
}

func TestDifficultyTimeAndNone(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: ProgressionTime, MaxAt: 100},
	}
	d := NewDifficultyManager(cfg)
	assert.InDelta(t, 0.6, d.Level(0, 50), 1e-12)

	cfg.Progression.Type = ProgressionNone
	d = NewDifficultyManager(cfg)
	assert.False(t, d.IsEnabled())
	assert.InDelta(t, 0.2, d.Level(99, 99), 1e-12)

	d.SetEnabled(false)
	assert.Equal(t, 0.0, d.Level(99, 99))
}

func TestDifficultyZeroMaxAt(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressionScore},
	})
	assert.Equal(t, 1.0, d.Level(1, 0))
}
