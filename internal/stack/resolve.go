package stack

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the alignment tolerance under which a drop snaps into place.
const DefaultEpsilon = 0.04

// OutcomeKind classifies the result of dropping a block.
type OutcomeKind int

const (
	Perfect OutcomeKind = iota // Aligned within epsilon, snapped to the block below
	Partial                    // Overhang sliced off as debris
	Miss                       // No overlap, the game is over
)

// String returns a human-readable name for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case Perfect:
		return "perfect"
	case Partial:
		return "partial"
	case Miss:
		return "miss"
	default:
		return "unknown"
	}
}

// Outcome is returned by Resolve.
// Debris is set only for Partial and is independent of the resolved block.
type Outcome struct {
	Kind   OutcomeKind
	Debris *Block
}

// Resolve settles current on top of previous along axis.
//
// Perfect snaps current onto previous. Partial shrinks current in place to the
// overlapping segment and returns the cut-off remainder as debris. Miss leaves
// current untouched. previous is only read.
//
// A negative size is a programming error and panics.
func Resolve(current *Block, previous Block, axis Axis, epsilon float64) Outcome {
	size := current.Size.Get(axis)
	if size < 0 || previous.Size.Get(axis) < 0 {
		panic(fmt.Sprintf("stack: negative size on axis %s: current=%v previous=%v", axis, *current, previous))
	}

	cur := current.Position.Get(axis)
	prev := previous.Position.Get(axis)
	distance := math.Abs(cur - prev)

	if distance < epsilon {
		current.Position = current.Position.With(axis, prev)
		return Outcome{Kind: Perfect}
	}

	overlap := size - distance
	if overlap <= 0 {
		return Outcome{Kind: Miss}
	}

	direction := -1.0
	if cur > prev {
		direction = 1.0
	}

	debris := *current
	debris.Size = debris.Size.With(axis, distance)
	debris.Position = debris.Position.With(axis, cur+overlap/2*direction)

	current.Size = current.Size.With(axis, overlap)
	current.Position = current.Position.With(axis, cur-distance/2*direction)

	return Outcome{Kind: Partial, Debris: &debris}
}
