package core

// Color represents a foreground color for a screen cell.
// Values are ANSI 256-color codes; 0 means the terminal default.
type Color uint8

// Predefined colors for HUD and overlay elements.
const (
	ColorDefault       Color = 0
	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorYellow        Color = 3
	ColorBlue          Color = 4
	ColorMagenta       Color = 5
	ColorCyan          Color = 6
	ColorWhite         Color = 7
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorOrange        Color = 208
	ColorGray          Color = 244
	ColorDarkGray      Color = 238
)

// cubeLevels are the channel intensities of the 6x6x6 color cube (codes 16-231).
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// RGB returns the 256-color code closest to the given true color.
// It picks between the color cube and the grayscale ramp (codes 232-255).
func RGB(r, g, b uint8) Color {
	ri, gi, bi := cubeIndex(int(r)), cubeIndex(int(g)), cubeIndex(int(b))
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := sqDist(int(r), int(g), int(b), cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	avg := (int(r) + int(g) + int(b)) / 3
	gray := Clamp((avg-8+5)/10, 0, 23)
	level := 8 + gray*10
	grayDist := sqDist(int(r), int(g), int(b), level, level, level)

	if grayDist < cubeDist {
		return Color(232 + gray)
	}
	return Color(cube)
}

// cubeIndex maps a channel value to the nearest cube level.
func cubeIndex(v int) int {
	best, bestDist := 0, 1<<30
	for i, l := range cubeLevels {
		if d := Abs(v - l); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(r1, g1, b1, r2, g2, b2 int) int {
	dr, dg, db := r1-r2, g1-g2, b1-b2
	return dr*dr + dg*dg + db*db
}
