package tower

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/stack"
)

// Minimum screen size the tower view needs.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// Glyphs.
const (
	BlockChar  = '█'
	DebrisChar = '▒'
	RingChar   = '═'
	FaintRing  = '─'
	EdgeChar   = '│'
)

// fadeGlyphs shade seed blocks the further they reach below the plane.
var fadeGlyphs = []rune{'█', '▓', '▒', '░'}

// Seed blocks fade out between these heights, in world units.
const (
	fadeTop    = -1.2
	fadeBottom = -2.4
)

// view maps world coordinates into one pane of the screen.
// Rows count layers upward from anchor; columns scale one horizontal axis.
type view struct {
	axis        stack.Axis
	inner       core.Rect
	anchor      int     // Screen row of the camera's reference layer
	center      int     // Screen column of the tower axis
	scale       float64 // Columns per world unit
	scroll      float64 // Layers the camera has risen
	zoom        float64
	layerHeight float64
}

func (g *Game) newView(axis stack.Axis, pane core.Rect) view {
	inner := pane.Inset(1)
	cfg := g.machine.Config()
	zoom := g.camera.Zoom()
	return view{
		axis:        axis,
		inner:       inner,
		anchor:      inner.Y + inner.H*2/3,
		center:      inner.X + inner.W/2,
		scale:       float64(inner.W/2-1) / (cfg.MoveRange + 0.5) * zoom,
		scroll:      g.camera.Scroll(),
		zoom:        zoom,
		layerHeight: cfg.LayerHeight,
	}
}

// row returns the screen row of the edge at world height y.
func (v view) row(y float64) int {
	units := y/v.layerHeight - v.scroll
	return v.anchor - int(math.Round(units*v.zoom))
}

// heightAt returns the world height at the middle of a screen row.
func (v view) heightAt(row int) float64 {
	units := v.scroll + (float64(v.anchor-row)-0.5)/v.zoom
	return units * v.layerHeight
}

// col returns the screen column of world coordinate p along the view axis.
func (v view) col(p float64) int {
	return v.center + int(math.Round(p*v.scale))
}

// span returns the rows and columns a block covers, end exclusive.
// A block always covers at least one row and one column.
func (v view) span(b stack.Block, lift float64) (top, bottom, left, right int) {
	top = v.row(b.Top() - lift)
	bottom = v.row(b.Top() - b.Size.Y - lift)
	if bottom <= top {
		bottom = top + 1
	}
	left = v.col(b.Min(v.axis))
	right = v.col(b.Max(v.axis))
	if right <= left {
		right = left + 1
	}
	return top, bottom, left, right
}

func (v view) visible(x, y int) bool {
	return v.inner.Contains(x, y)
}

// Render draws the HUD and both tower panes.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.machine == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	if w < MinScreenW || h < MinScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorYellow)
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	g.drawHUD(dst)

	paneW := w / 2
	front := core.NewRect(0, 1, paneW, h-1)
	side := core.NewRect(paneW, 1, w-paneW, h-1)
	g.drawPane(dst, g.newView(stack.AxisX, front), front, " FRONT ")
	g.drawPane(dst, g.newView(stack.AxisZ, side), side, " SIDE ")

	snap := g.machine.Snapshot()
	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Phase == stack.PhaseInit:
		drawCenteredMessage(dst, "STACK", "Tap to start")
	case snap.Phase == stack.PhaseGameOver:
		sub := fmt.Sprintf("Score: %d  |  Best: %d", snap.Layer, g.best)
		if g.record != nil && g.record.NewRecord {
			sub = fmt.Sprintf("Score: %d  |  NEW RECORD!", snap.Layer)
		}
		if snap.AllowReset {
			drawCenteredMessage(dst, "GAME OVER", sub, "Tap to play again")
		} else {
			drawCenteredMessage(dst, "GAME OVER", sub)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	state := g.State()
	dst.DrawTextColored(1, 0, g.Title(), core.ColorBrightCyan)
	dst.DrawTextCentered(0, fmt.Sprintf(" %d ", state.Score), core.ColorBrightWhite)

	best := fmt.Sprintf("Best: %d", max(state.Best, state.Score))
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorGray)

	if g.banner > 0 && state.Combo > 0 {
		text := "PERFECT"
		if state.Combo > 1 {
			text = fmt.Sprintf("PERFECT x%d", state.Combo)
		}
		x := dst.Width()/2 + 4
		dst.DrawTextColored(x, 0, text, core.ColorBrightYellow)
	}
}

// drawPane draws one side of the tower, bottom to top, so higher blocks win
// where the zoomed view overlaps rows.
func (g *Game) drawPane(dst *core.Screen, v view, pane core.Rect, label string) {
	dst.DrawBox(pane, core.ColorDarkGray)
	dst.DrawTextColored(pane.X+2, pane.Y, label, core.ColorGray)

	for _, b := range g.tower {
		g.drawBlock(dst, v, b, 0, false)
	}
	if g.machine.Phase() == stack.PhasePlaying {
		g.drawBlock(dst, v, g.machine.Current(), 0, false)
	}
	for _, d := range g.effects.Debris() {
		g.drawBlock(dst, v, d.Block, d.Drop(), true)
	}
	for _, r := range g.effects.Ripples() {
		drawRipple(dst, v, r)
	}
}

func (g *Game) drawBlock(dst *core.Screen, v view, b stack.Block, lift float64, debris bool) {
	top, bottom, left, right := v.span(b, lift)
	c := g.blockColor(b.Hue)
	for y := top; y < bottom; y++ {
		glyph := BlockChar
		switch {
		case debris:
			glyph = DebrisChar
		case b.Faded():
			var ok bool
			if glyph, ok = fadeGlyph(v.heightAt(y)); !ok {
				continue
			}
		}
		for x := left; x < right; x++ {
			if v.visible(x, y) {
				dst.SetColored(x, y, glyph, c)
			}
		}
	}
}

// fadeGlyph picks the shade for a seed block row at world height y.
// ok is false once the row has faded out completely.
func fadeGlyph(y float64) (rune, bool) {
	t := (fadeTop - y) / (fadeTop - fadeBottom)
	if t <= 0 {
		return fadeGlyphs[0], true
	}
	if t >= 1 {
		return 0, false
	}
	return fadeGlyphs[int(t*float64(len(fadeGlyphs)))], true
}

// drawRipple marks each ring on the row of the perfect block, on both sides.
func drawRipple(dst *core.Screen, v view, r Ripple) {
	top, _, left, right := v.span(r.Block, 0)
	for i := 0; i < r.Rings; i++ {
		reach, opacity, ok := r.Ring(i)
		if !ok {
			continue
		}
		glyph := RingChar
		if opacity < 0.5 {
			glyph = FaintRing
		}
		if i == 0 {
			glyph = EdgeChar
		}
		c := ringColor(opacity, r.Pitch)
		l := v.col(r.Block.Min(v.axis)-reach) - 1
		rt := v.col(r.Block.Max(v.axis) + reach)
		for _, x := range []int{l, rt} {
			if v.visible(x, top) {
				dst.SetColored(x, top, glyph, c)
			}
		}
		if i > 0 {
			for x := l + 1; x < left; x++ {
				if v.visible(x, top) && dst.Get(x, top) == ' ' {
					dst.SetColored(x, top, FaintRing, c)
				}
			}
			for x := right; x < rt; x++ {
				if v.visible(x, top) && dst.Get(x, top) == ' ' {
					dst.SetColored(x, top, FaintRing, c)
				}
			}
		}
	}
}

// ringColor is a gray whose brightness follows opacity, lifted by the combo pitch.
func ringColor(opacity, pitch float64) core.Color {
	lift := 0.5 + pitch/4
	level := core.ClampF(opacity*lift, 0, 1)
	return core.Color(232 + int(math.Round(level*23)))
}

// blockColor converts a hue into the terminal palette using the configured
// saturation and lightness.
func (g *Game) blockColor(hue float64) core.Color {
	c := colorful.Hsl(hue, g.cfg.Colors.Saturation, g.cfg.Colors.Lightness).Clamped()
	r, gr, b := c.RGB255()
	return core.RGB(r, gr, b)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = core.Max(boxW, len(l))
	}
	boxW += 4
	boxH := 3 + 2*len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len(l))/2, boxY+3+2*i, l, core.ColorGray)
	}
}
