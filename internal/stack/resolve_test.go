package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockAt(axis Axis, pos, size float64) Block {
	return Block{
		Position: Vec3{}.With(axis, pos),
		Size:     Vec3{X: 1, Y: DefaultLayerHeight, Z: 1}.With(axis, size),
		Layer:    1,
	}
}

func TestResolvePerfect(t *testing.T) {
	tests := []struct {
		name     string
		axis     Axis
		cur      float64
		prev     float64
		expected float64
	}{
		{"exact alignment", AxisX, 0, 0, 0},
		{"just inside epsilon right", AxisX, 0.039, 0, 0},
		{"just inside epsilon left", AxisZ, 0.461, 0.5, 0.5},
		{"offset previous", AxisZ, -0.32, -0.3, -0.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cur := blockAt(tc.axis, tc.cur, 1)
			prev := blockAt(tc.axis, tc.prev, 1)

			out := Resolve(&cur, prev, tc.axis, DefaultEpsilon)

			assert.Equal(t, Perfect, out.Kind)
			assert.Nil(t, out.Debris)
			assert.Equal(t, tc.expected, cur.Position.Get(tc.axis))
			assert.Equal(t, 1.0, cur.Size.Get(tc.axis), "size must not change on a perfect drop")
		})
	}
}

func TestResolveMissLeavesBlockUntouched(t *testing.T) {
	tests := []struct {
		name string
		cur  float64
		size float64
	}{
		{"far right", 1.2, 1},
		{"far left", -1.6, 1},
		{"edges touching", 1.0, 1},
		{"narrow block", 0.5, 0.4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cur := blockAt(AxisX, tc.cur, tc.size)
			before := cur
			prev := blockAt(AxisX, 0, tc.size)

			out := Resolve(&cur, prev, AxisX, DefaultEpsilon)

			assert.Equal(t, Miss, out.Kind)
			assert.Nil(t, out.Debris)
			assert.Equal(t, before, cur)
		})
	}
}

func TestResolvePartialScenario(t *testing.T) {
	cur := blockAt(AxisX, 0.5, 1.0)
	prev := blockAt(AxisX, 0, 1.0)

	out := Resolve(&cur, prev, AxisX, DefaultEpsilon)

	require.Equal(t, Partial, out.Kind)
	require.NotNil(t, out.Debris)

	assert.Equal(t, 0.5, cur.Size.X)
	assert.Equal(t, 0.25, cur.Position.X)
	assert.Equal(t, 0.5, out.Debris.Size.X)
	assert.Equal(t, 0.75, out.Debris.Position.X)

	// Off-axis fields are cloned unchanged.
	assert.Equal(t, cur.Size.Z, out.Debris.Size.Z)
	assert.Equal(t, cur.Position.Y, out.Debris.Position.Y)
	assert.Equal(t, cur.Layer, out.Debris.Layer)
}

func TestResolvePartialReconstructsFootprint(t *testing.T) {
	const size = 1.0
	for _, axis := range []Axis{AxisX, AxisZ} {
		for off := -0.95; off <= 0.95; off += 0.05 {
			if off > -DefaultEpsilon && off < DefaultEpsilon {
				continue
			}

			cur := blockAt(axis, 0.2+off, size)
			original := cur
			prev := blockAt(axis, 0.2, size)

			out := Resolve(&cur, prev, axis, DefaultEpsilon)
			require.Equal(t, Partial, out.Kind, "axis=%s off=%.2f", axis, off)
			debris := *out.Debris

			assert.InDelta(t, original.Size.Get(axis), cur.Size.Get(axis)+debris.Size.Get(axis), 1e-9)

			if off > 0 {
				assert.InDelta(t, original.Min(axis), cur.Min(axis), 1e-9)
				assert.InDelta(t, cur.Max(axis), debris.Min(axis), 1e-9)
				assert.InDelta(t, original.Max(axis), debris.Max(axis), 1e-9)
				assert.InDelta(t, prev.Max(axis), cur.Max(axis), 1e-9)
			} else {
				assert.InDelta(t, original.Max(axis), cur.Max(axis), 1e-9)
				assert.InDelta(t, debris.Max(axis), cur.Min(axis), 1e-9)
				assert.InDelta(t, original.Min(axis), debris.Min(axis), 1e-9)
				assert.InDelta(t, prev.Min(axis), cur.Min(axis), 1e-9)
			}
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	inputs := []float64{0, 0.01, 0.3, -0.7, 0.99, 1.5}
	for _, pos := range inputs {
		a := blockAt(AxisZ, pos, 1)
		b := blockAt(AxisZ, pos, 1)
		prev := blockAt(AxisZ, 0, 1)

		outA := Resolve(&a, prev, AxisZ, DefaultEpsilon)
		outB := Resolve(&b, prev, AxisZ, DefaultEpsilon)

		assert.Equal(t, outA.Kind, outB.Kind)
		assert.Equal(t, a, b)
		assert.Equal(t, outA.Debris, outB.Debris)
	}
}

func TestResolveDoesNotTouchOtherAxis(t *testing.T) {
	cur := Block{Position: Vec3{X: 0.3, Z: 0.2}, Size: Vec3{X: 1, Y: 0.2, Z: 0.8}}
	prev := Block{Position: Vec3{X: 0, Z: 0.2}, Size: Vec3{X: 1, Y: 0.2, Z: 0.8}}

	Resolve(&cur, prev, AxisX, DefaultEpsilon)

	assert.Equal(t, 0.2, cur.Position.Z)
	assert.Equal(t, 0.8, cur.Size.Z)
}

func TestResolveNegativeSizePanics(t *testing.T) {
	cur := blockAt(AxisX, 0.2, -1)
	prev := blockAt(AxisX, 0, 1)

	assert.Panics(t, func() {
		Resolve(&cur, prev, AxisX, DefaultEpsilon)
	})
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "perfect", Perfect.String())
	assert.Equal(t, "partial", Partial.String())
	assert.Equal(t, "miss", Miss.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())
}
