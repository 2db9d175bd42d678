package tower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

func TestRippleCount(t *testing.T) {
	tests := []struct {
		combo    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 4},
		{5, 5},
		{9, 5},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, RippleCount(tc.combo), "combo=%d", tc.combo)
	}
}

func TestComboPitch(t *testing.T) {
	assert.InDelta(t, 1.0, ComboPitch(0), 1e-9)
	assert.InDelta(t, 1.3, ComboPitch(3), 1e-9)
	assert.InDelta(t, 2.0, ComboPitch(10), 1e-9)
	assert.InDelta(t, 2.0, ComboPitch(25), 1e-9, "pitch is capped at one octave")
}

func TestDebrisFalls(t *testing.T) {
	d := Debris{}
	assert.Zero(t, d.Drop())
	assert.False(t, d.Done())

	d.Age = DebrisFallTime / 2
	assert.InDelta(t, DebrisFallDistance/4, d.Drop(), 1e-9, "eases in")

	d.Age = DebrisFallTime
	assert.InDelta(t, DebrisFallDistance, d.Drop(), 1e-9)
	assert.True(t, d.Done())

	d.Age = 10
	assert.InDelta(t, DebrisFallDistance, d.Drop(), 1e-9, "drop stops at the fall distance")
}

func TestRippleRings(t *testing.T) {
	r := Ripple{Rings: 3}

	_, opacity, ok := r.Ring(0)
	require.True(t, ok)
	assert.InDelta(t, 1.0, opacity, 1e-9)

	_, _, ok = r.Ring(1)
	assert.False(t, ok, "second ring starts after its stagger")

	_, _, ok = r.Ring(3)
	assert.False(t, ok, "out of range")

	r.Age = 0.6
	reach0, _, ok := r.Ring(0)
	require.True(t, ok)
	assert.Zero(t, reach0, "first ring marks the block edge")

	reach1, op1, ok := r.Ring(1)
	require.True(t, ok)
	reach2, op2, ok := r.Ring(2)
	require.True(t, ok)
	assert.Greater(t, reach1, reach2, "later rings reach less")
	assert.Greater(t, op2, op1, "later rings started later and fade behind")
	assert.LessOrEqual(t, reach1, rippleReach-rippleReachStep)
}

func TestRippleDone(t *testing.T) {
	r := Ripple{Rings: 3, Age: 1.15}
	assert.False(t, r.Done())
	_, _, ok := r.Ring(2)
	assert.True(t, ok)

	r.Age = 1.25
	assert.True(t, r.Done())
	for i := 0; i < r.Rings; i++ {
		_, _, ok := r.Ring(i)
		assert.False(t, ok, "ring %d", i)
	}
}

func TestEffectsUpdateDropsFinished(t *testing.T) {
	var e Effects
	b := stack.Block{Size: stack.Vec3{X: 1, Y: 0.2, Z: 1}}
	e.AddDebris(b)
	e.AddRipple(b, 3)

	require.Len(t, e.Debris(), 1)
	require.Len(t, e.Ripples(), 1)
	assert.Equal(t, 3, e.Ripples()[0].Rings)
	assert.InDelta(t, 1.3, e.Ripples()[0].Pitch, 1e-9)

	e.Update(0.5)
	assert.Len(t, e.Debris(), 1)
	assert.Len(t, e.Ripples(), 1)

	e.Update(0.5)
	assert.Empty(t, e.Debris(), "debris falls for 0.8s")
	assert.Len(t, e.Ripples(), 1, "last ring is still fading")

	e.Update(0.5)
	assert.Empty(t, e.Ripples())
}

func TestEffectsClear(t *testing.T) {
	var e Effects
	e.AddDebris(stack.Block{})
	e.AddRipple(stack.Block{}, 0)
	e.Clear()
	assert.Empty(t, e.Debris())
	assert.Empty(t, e.Ripples())
}
