package tower

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/stack"
)

func render(g *Game, w, h int) string {
	s := core.NewScreen(w, h)
	g.Render(s)
	return s.String()
}

func TestRenderInitScreen(t *testing.T) {
	g := newTestGame(t, New(), nil)
	out := render(g, 80, 24)

	assert.Contains(t, out, "FRONT")
	assert.Contains(t, out, "SIDE")
	assert.Contains(t, out, "Tap to start")
	assert.Contains(t, out, string(BlockChar), "seed blocks are drawn")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New(), nil)
	out := render(g, MinScreenW-1, MinScreenH)
	assert.Contains(t, out, "Terminal too small")
	assert.NotContains(t, out, "FRONT")
}

func TestRenderPlayingShowsScore(t *testing.T) {
	g := newTestGame(t, New(), nil)
	start(t, g)
	out := render(g, 80, 24)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], " 1 ")
	assert.Contains(t, lines[0], "Stack")
	assert.NotContains(t, out, "Tap to start")
}

func TestRenderPerfectBanner(t *testing.T) {
	g := newTestGame(t, New(), nil)
	start(t, g)
	stepUntil(t, g, func(off float64) bool { return off > -0.02 && off < 0.02 })

	out := render(g, 80, 24)
	assert.Contains(t, strings.Split(out, "\n")[0], "PERFECT")
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(t, New(), nil)
	start(t, g)
	g.Step(input(core.ActionPause))

	assert.Contains(t, render(g, 80, 24), "PAUSED")
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, New(), nil)
	start(t, g)
	missNow(t, g)

	out := render(g, 80, 24)
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "NEW RECORD!")
	assert.NotContains(t, out, "Tap to play again", "reset not allowed yet")

	for i := 0; i < 60; i++ {
		g.Step(input())
	}
	assert.Contains(t, render(g, 80, 24), "Tap to play again")
}

func TestRenderUsesBlockColors(t *testing.T) {
	g := newTestGame(t, New(), nil)
	s := core.NewScreen(80, 24)
	g.Render(s)

	colored := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Rune == BlockChar && c.Color >= 16 {
				colored++
			}
		}
	}
	assert.Positive(t, colored)
}

func TestFadeGlyph(t *testing.T) {
	tests := []struct {
		y    float64
		want rune
		ok   bool
	}{
		{0, '█', true},
		{-1.2, '█', true},
		{-1.4, '█', true},
		{-1.6, '▓', true},
		{-1.9, '▒', true},
		{-2.2, '░', true},
		{-2.4, 0, false},
		{-3, 0, false},
	}

	for _, tc := range tests {
		got, ok := fadeGlyph(tc.y)
		assert.Equal(t, tc.ok, ok, "y=%v", tc.y)
		assert.Equal(t, tc.want, got, "y=%v", tc.y)
	}
}

func TestViewRowsFollowCamera(t *testing.T) {
	v := view{axis: stack.AxisX, anchor: 10, zoom: 1, layerHeight: 0.2}
	assert.Equal(t, 10, v.row(0))
	assert.Equal(t, 7, v.row(0.6))

	v.scroll = 2
	assert.Equal(t, 9, v.row(0.6), "raising the camera lowers the tower")

	v.scroll, v.zoom = 0, 0.5
	assert.Equal(t, 9, v.row(0.4))
	assert.InDelta(t, 0.2, v.heightAt(9), 1e-9)
}
