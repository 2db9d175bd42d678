package tower

import (
	"math"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

// Debris and ripple timing, in seconds and world units.
const (
	DebrisFallDistance = 4.0 // How far a cut-off piece drops before it is discarded
	DebrisFallTime     = 0.8

	MaxRippleRings  = 5
	rippleStagger   = 0.1  // Delay between consecutive rings
	rippleReach     = 0.4  // Expansion of the second ring; later rings reach less
	rippleReachStep = 0.05 // Reach lost per ring
	rippleGrowTime  = 1.0  // Expansion time of the first ring
	rippleGrowStep  = 0.15 // Expansion time lost per ring
	rippleFadeTime  = 1.0
)

// RippleCount returns how many rings a perfect drop emits for the streak
// that preceded it.
func RippleCount(combo int) int {
	if combo < 2 {
		return 1
	}
	return min(combo, MaxRippleRings)
}

// ComboPitch returns the pitch factor of a perfect drop, rising 10% per
// streak step up to one octave. The renderer uses it to brighten ripples.
func ComboPitch(combo int) float64 {
	return math.Min(1.0+0.1*float64(combo), 2.0)
}

// Debris is a falling piece: a trimmed remainder or a whole missed block.
type Debris struct {
	Block stack.Block
	Age   float64
}

// Drop returns how far the piece has fallen, easing in like gravity.
func (d Debris) Drop() float64 {
	t := math.Min(d.Age/DebrisFallTime, 1)
	return DebrisFallDistance * t * t
}

// Done reports whether the piece has finished falling.
func (d Debris) Done() bool {
	return d.Age >= DebrisFallTime
}

// Ripple is the ring burst around a perfectly placed block.
type Ripple struct {
	Block stack.Block
	Rings int
	Pitch float64
	Age   float64
}

// Ring returns the outward offset of ring i in world units and its opacity.
// ok is false if the ring has not started yet or has faded out.
func (r Ripple) Ring(i int) (reach, opacity float64, ok bool) {
	if i < 0 || i >= r.Rings {
		return 0, 0, false
	}
	t := r.Age - float64(i)*rippleStagger
	if t < 0 || t >= rippleFadeTime {
		return 0, 0, false
	}

	if i > 0 {
		grow := rippleGrowTime - float64(i)*rippleGrowStep
		p := 1 - math.Pow(1-math.Min(t/grow, 1), 2)
		reach = (rippleReach - float64(i)*rippleReachStep) * p
	}
	fade := t / rippleFadeTime
	opacity = math.Pow(1-fade, 2)
	return reach, opacity, true
}

// Done reports whether every ring has faded out.
func (r Ripple) Done() bool {
	return r.Age >= float64(r.Rings-1)*rippleStagger+rippleFadeTime
}

// Effects holds the transient animations of a session.
type Effects struct {
	debris  []Debris
	ripples []Ripple
}

// AddDebris starts a falling piece.
func (e *Effects) AddDebris(b stack.Block) {
	e.debris = append(e.debris, Debris{Block: b})
}

// AddRipple starts a ring burst for a perfect drop after the given streak.
func (e *Effects) AddRipple(b stack.Block, combo int) {
	e.ripples = append(e.ripples, Ripple{
		Block: b,
		Rings: RippleCount(combo),
		Pitch: ComboPitch(combo),
	})
}

// Update ages every animation by dt seconds and drops finished ones.
func (e *Effects) Update(dt float64) {
	debris := e.debris[:0]
	for _, d := range e.debris {
		d.Age += dt
		if !d.Done() {
			debris = append(debris, d)
		}
	}
	e.debris = debris

	ripples := e.ripples[:0]
	for _, r := range e.ripples {
		r.Age += dt
		if !r.Done() {
			ripples = append(ripples, r)
		}
	}
	e.ripples = ripples
}

// Clear drops every animation.
func (e *Effects) Clear() {
	e.debris = e.debris[:0]
	e.ripples = e.ripples[:0]
}

// Debris returns the pieces still falling.
func (e *Effects) Debris() []Debris { return e.debris }

// Ripples returns the bursts still visible.
func (e *Effects) Ripples() []Ripple { return e.ripples }
