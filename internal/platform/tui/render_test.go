package tui

import (
	"strconv"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-stack/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "red", core.ColorRed)
	s.DrawTextColored(4, 0, "cube", core.RGB(200, 80, 40))
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	assert.Contains(t, out, "red")
	assert.Contains(t, out, "cube")
	assert.Contains(t, out, "plain")
}

func TestColorStylesCoverPalette(t *testing.T) {
	assert.Equal(t, lipgloss.NoColor{}, colorStyles[core.ColorDefault].GetForeground())
	for c := 1; c < len(colorStyles); c++ {
		assert.Equal(t, lipgloss.Color(strconv.Itoa(c)), colorStyles[c].GetForeground(), "code %d", c)
	}
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab", centerText("ab", 6))
	assert.Equal(t, "toolong", centerText("toolong", 3))
}
