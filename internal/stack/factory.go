package stack

import "math"

// Factory derives new blocks from the game state.
// The hue seed and direction are drawn once per session by Reseed.
type Factory struct {
	layerHeight float64
	moveRange   float64
	hueStep     float64

	hueOffset    int
	hueDirection int
}

// NewFactory creates a factory and draws its first hue seed from rng.
func NewFactory(cfg Config, rng Random) *Factory {
	f := newFactory(cfg)
	f.Reseed(rng)
	return f
}

func newFactory(cfg Config) *Factory {
	return &Factory{
		layerHeight: cfg.LayerHeight,
		moveRange:   cfg.MoveRange,
		hueStep:     cfg.HueStep,
	}
}

// Reseed draws a new hue offset in [0, 360] and a hue direction of +1 or -1.
func (f *Factory) Reseed(rng Random) {
	f.hueOffset = rng.IntN(361)
	f.hueDirection = 1
	if rng.IntN(2) == 0 {
		f.hueDirection = -1
	}
}

// HueOffset returns the session hue seed.
func (f *Factory) HueOffset() int { return f.hueOffset }

// HueDirection returns the session hue direction (+1 or -1).
func (f *Factory) HueDirection() int { return f.hueDirection }

// Hue returns the color of the block at the given layer index, in [0, 360).
func (f *Factory) Hue(layer int) float64 {
	h := math.Mod(float64(layer)*f.hueStep*float64(f.hueDirection)+float64(f.hueOffset), 360)
	if h < 0 {
		h += 360
	}
	return h
}

// SeedBlock builds one of the two static blocks the tower starts on.
// base is the layer its bottom face sits on and layers its thickness.
// Seed blocks are centered on the origin with a unit footprint.
func (f *Factory) SeedBlock(base, layers int) Block {
	height := float64(layers) * f.layerHeight
	top := base + layers
	return Block{
		Position: Vec3{Y: float64(base)*f.layerHeight + height/2},
		Size:     Vec3{X: 1, Y: height, Z: 1},
		Layer:    top,
		Hue:      f.Hue(top),
	}
}

// Next builds the block that will travel along axis on top of current.
// layer is the number of layers already placed; the new block sits on top of it.
// The footprint is inherited from current, the off-axis position too, and the
// block spawns at the negative end of its travel range.
func (f *Factory) Next(current Block, axis Axis, layer int) Block {
	index := layer + 1
	pos := current.Position.With(axis, -f.moveRange)
	pos.Y = float64(layer)*f.layerHeight + f.layerHeight/2
	return Block{
		Position: pos,
		Size:     Vec3{X: current.Size.X, Y: f.layerHeight, Z: current.Size.Z},
		Layer:    index,
		Hue:      f.Hue(index),
	}
}
