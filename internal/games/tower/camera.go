package tower

import "github.com/vovakirdan/tui-stack/internal/core"

// Camera tunables.
const (
	RaiseLayer        = 3    // The view follows the top once the score passes this
	PreviewLayer      = 15   // Minimum score for the game-over zoom out
	PreviewZoomFactor = 10.0 // Zoom on game over is this divided by the score

	raiseTime = 0.5 // Seconds to scroll one layer
	zoomTime  = 0.8 // Seconds to finish the game-over zoom
)

// Camera tracks the vertical scroll (in layers) and zoom of the tower view.
// Both approach their targets over time with an ease-out.
type Camera struct {
	scroll, zoom float64

	scrollFrom, scrollTo float64
	scrollT              float64
	zoomFrom, zoomTo     float64
	zoomT                float64
}

// NewCamera returns a camera at the ground with no zoom.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset snaps back to the initial view.
func (c *Camera) Reset() {
	*c = Camera{
		zoom: 1, zoomFrom: 1, zoomTo: 1, zoomT: 1,
		scrollT: 1,
	}
}

// Follow raises the view so the new top layer stays in frame.
func (c *Camera) Follow(layer int) {
	if layer <= RaiseLayer {
		return
	}
	c.scrollFrom = c.scroll
	c.scrollTo = float64(layer - RaiseLayer)
	c.scrollT = 0
}

// Preview zooms out to show a tall finished tower.
func (c *Camera) Preview(layer int) {
	if layer < PreviewLayer {
		return
	}
	c.zoomFrom = c.zoom
	c.zoomTo = PreviewZoomFactor / float64(layer)
	c.zoomT = 0
}

// Update advances the tweens by dt seconds.
func (c *Camera) Update(dt float64) {
	c.scrollT = core.ClampF(c.scrollT+dt/raiseTime, 0, 1)
	c.scroll = core.Lerp(c.scrollFrom, c.scrollTo, easeOut(c.scrollT))

	c.zoomT = core.ClampF(c.zoomT+dt/zoomTime, 0, 1)
	c.zoom = core.Lerp(c.zoomFrom, c.zoomTo, easeOut(c.zoomT))
}

// Scroll returns how many layers the view has been raised.
func (c *Camera) Scroll() float64 { return c.scroll }

// Zoom returns the view scale; 1 is the play view.
func (c *Camera) Zoom() float64 { return c.zoom }

// Settled reports whether both tweens have finished.
func (c *Camera) Settled() bool { return c.scrollT >= 1 && c.zoomT >= 1 }

func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
