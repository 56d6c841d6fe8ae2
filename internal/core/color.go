package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI colors in the terminal frontend.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// ColorFromRGB picks the closest ANSI color for an rgb triple in [0, 1].
// Lit surfaces (intensity above one half) use the bright variant.
func ColorFromRGB(r, g, b, intensity float32) Color {
	const on = 0.5
	mask := 0
	if r >= on {
		mask |= 1
	}
	if g >= on {
		mask |= 2
	}
	if b >= on {
		mask |= 4
	}

	base := [8]Color{
		ColorGray, ColorRed, ColorGreen, ColorYellow,
		ColorBlue, ColorMagenta, ColorCyan, ColorWhite,
	}[mask]

	if intensity <= on || base == ColorGray {
		return base
	}
	return base + (ColorBrightRed - ColorRed)
}
