// Package stack implements the rules of the stacking game: the overlap
// resolver, the block factory and the tap/tick state machine.
// It has no dependencies outside the standard library so the rules stay
// deterministic and easy to test; presentation lives in the platform layer.
package stack

import "fmt"

// Axis is one of the two horizontal axes a block can travel along.
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

// Other returns the perpendicular horizontal axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisZ
	}
	return AxisX
}

// String returns "x" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Vec3 is a point or extent in world units.
type Vec3 struct {
	X, Y, Z float64
}

// Get returns the component along a horizontal axis.
func (v Vec3) Get(a Axis) float64 {
	if a == AxisZ {
		return v.Z
	}
	return v.X
}

// With returns a copy of v with the component along a replaced.
func (v Vec3) With(a Axis, val float64) Vec3 {
	if a == AxisZ {
		v.Z = val
	} else {
		v.X = val
	}
	return v
}

// Block is one layer of the tower, or the layer currently moving.
// Position is the center; Size holds full extents.
type Block struct {
	Position Vec3
	Size     Vec3
	Layer    int     // Index of the block's top layer; doubles as the score it represents
	Hue      float64 // Degrees in [0, 360)
}

// Faded reports whether the block is a seed block below the reference plane.
// The presentation layer draws these with a vertical fade.
func (b Block) Faded() bool {
	return b.Layer <= 0
}

// Min returns the lower edge of the block along a.
func (b Block) Min(a Axis) float64 {
	return b.Position.Get(a) - b.Size.Get(a)/2
}

// Max returns the upper edge of the block along a.
func (b Block) Max(a Axis) float64 {
	return b.Position.Get(a) + b.Size.Get(a)/2
}

// Top returns the y coordinate of the block's top face.
func (b Block) Top() float64 {
	return b.Position.Y + b.Size.Y/2
}

// String is used in log lines and test failures.
func (b Block) String() string {
	return fmt.Sprintf("block{layer=%d pos=(%.3f,%.3f,%.3f) size=(%.3f,%.3f,%.3f)}",
		b.Layer, b.Position.X, b.Position.Y, b.Position.Z, b.Size.X, b.Size.Y, b.Size.Z)
}
