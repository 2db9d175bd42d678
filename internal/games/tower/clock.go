package tower

import "time"

// tickClock is simulation time: it only moves when the game steps, so the
// reset delay pauses with the game and replays exactly.
type tickClock struct {
	rate  int
	ticks int64
}

// epoch is the zero of simulation time.
var epoch = time.Unix(0, 0).UTC()

func newTickClock(rate int) *tickClock {
	if rate <= 0 {
		rate = 60
	}
	return &tickClock{rate: rate}
}

// Now implements stack.Clock.
func (c *tickClock) Now() time.Time {
	return epoch.Add(c.Elapsed())
}

// Tick advances the clock by one simulation tick.
func (c *tickClock) Tick() {
	c.ticks++
}

// Elapsed returns the simulated time since the clock was created.
func (c *tickClock) Elapsed() time.Duration {
	return time.Duration(c.ticks) * time.Second / time.Duration(c.rate)
}
