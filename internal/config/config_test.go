package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseStack(defaultStackYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultStackConfig(), cfg)
}

func TestDefaultMachineConfig(t *testing.T) {
	got := DefaultStackConfig().MachineConfig(42)

	want := stack.DefaultConfig()
	want.Seed = 42
	assert.Equal(t, want, got)
}

func TestLoadStackFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	cfg, src, err := loadStack("", []string{filepath.Join(dir, "missing.yaml")})

	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
	assert.Equal(t, DefaultStackConfig(), cfg)
}

func TestLoadStackSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeConfig(t, second, "physics:\n  move_speed: 3.0\n")

	paths := []string{filepath.Join(first, FileName), filepath.Join(second, FileName)}
	cfg, src, err := loadStack("", paths)
	require.NoError(t, err)
	assert.Equal(t, Source(paths[1]), src)
	assert.Equal(t, 3.0, cfg.Physics.MoveSpeed)

	writeConfig(t, first, "physics:\n  move_speed: 1.5\n")
	cfg, src, err = loadStack("", paths)
	require.NoError(t, err)
	assert.Equal(t, Source(paths[0]), src)
	assert.Equal(t, 1.5, cfg.Physics.MoveSpeed)
}

func TestLoadStackPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "timing:\n  reset_delay_ms: 250\n")

	cfg, _, err := loadStack(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Timing.ResetDelay())
	assert.Equal(t, stack.DefaultMoveSpeed, cfg.Physics.MoveSpeed)
	assert.Equal(t, stack.DefaultBaseLayersBottom, cfg.Layout.BaseLayersBottom)
}

func TestLoadStackCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := loadStack(filepath.Join(dir, "nope.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeConfig(t, dir, "physics: [not, a, map]\n")
	_, _, err = loadStack(bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse")
}

func TestLoadStackRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "physics:\n  move_speed: -1\nlayout:\n  layer_height: 0\n")

	_, _, err := loadStack("", []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move_speed")
	assert.Contains(t, err.Error(), "layer_height")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*StackConfig)
		wantErr string
	}{
		{"defaults", func(*StackConfig) {}, ""},
		{"zero range", func(c *StackConfig) { c.Physics.MoveRange = 0 }, "move_range"},
		{"negative epsilon", func(c *StackConfig) { c.Physics.Epsilon = -0.01 }, "epsilon"},
		{"negative base", func(c *StackConfig) { c.Layout.BaseLayersBottom = -2 }, "base_layers"},
		{"saturation out of range", func(c *StackConfig) { c.Colors.Saturation = 1.5 }, "saturation"},
		{"negative delay", func(c *StackConfig) { c.Timing.ResetDelayMS = -1 }, "reset_delay_ms"},
		{"bad level", func(c *StackConfig) { c.Difficulty.InitialLevel = 2 }, "initial_level"},
		{"bad progression", func(c *StackConfig) { c.Difficulty.Progression.Type = "lunar" }, "progression.type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultStackConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"easy", "Normal", " HARD ", "fixed"} {
		p, err := ParsePreset(s)
		require.NoError(t, err, s)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(s)), string(p))
	}

	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestApplyStackPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		epsilon float64
	}{
		{DifficultyEasy, true, 0.0, stack.DefaultEpsilon * 1.5},
		{DifficultyNormal, true, 0.3, stack.DefaultEpsilon},
		{DifficultyHard, true, 0.7, stack.DefaultEpsilon * 0.5},
		{DifficultyFixed, false, 0.0, stack.DefaultEpsilon},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultStackConfig()
			ApplyStackPreset(&cfg, tc.preset)

			assert.Equal(t, tc.enabled, cfg.Difficulty.Enabled)
			assert.Equal(t, tc.level, cfg.Difficulty.InitialLevel)
			assert.InDelta(t, tc.epsilon, cfg.Physics.Epsilon, 1e-12)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultStackConfig()
	ApplyStackPreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "move_speed")

	back, err := parseStack(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
