package tower

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCameraStartsAtGround(t *testing.T) {
	c := NewCamera()
	assert.Zero(t, c.Scroll())
	assert.Equal(t, 1.0, c.Zoom())
	assert.True(t, c.Settled())
}

func TestCameraFollowWaitsForRaiseLayer(t *testing.T) {
	c := NewCamera()
	for layer := 1; layer <= RaiseLayer; layer++ {
		c.Follow(layer)
	}
	c.Update(1)
	assert.Zero(t, c.Scroll())
}

func TestCameraFollowEasesUp(t *testing.T) {
	c := NewCamera()
	c.Follow(RaiseLayer + 2)
	assert.False(t, c.Settled())

	c.Update(raiseTime / 2)
	mid := c.Scroll()
	assert.Greater(t, mid, 1.0, "ease-out covers more than half the way in half the time")
	assert.Less(t, mid, 2.0)

	c.Update(raiseTime)
	assert.InDelta(t, 2.0, c.Scroll(), 1e-9)
	assert.True(t, c.Settled())
}

func TestCameraPreview(t *testing.T) {
	c := NewCamera()
	c.Preview(PreviewLayer - 1)
	c.Update(zoomTime)
	assert.Equal(t, 1.0, c.Zoom(), "short towers keep the play view")

	c.Preview(20)
	c.Update(zoomTime)
	assert.InDelta(t, PreviewZoomFactor/20, c.Zoom(), 1e-9)

	c.Reset()
	assert.Equal(t, 1.0, c.Zoom())
	assert.Zero(t, c.Scroll())
}

func TestTickClock(t *testing.T) {
	c := newTickClock(60)
	start := c.Now()
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	assert.Equal(t, time.Second, c.Now().Sub(start))
	assert.Equal(t, time.Second, c.Elapsed())

	assert.Equal(t, 60, newTickClock(0).rate, "zero rate falls back to 60")
}
