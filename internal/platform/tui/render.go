package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/render/soft"
)

// ansi holds the terminal palette index of each rasterizer color.
var ansi = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorGray:          "245",
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// fogStart is the fraction of the frame's covered depth range past which
// fragments are drawn faint.
const fogStart = 2.0 / 3.0

// cellStyle is the per-cell key that a run of output shares.
type cellStyle struct {
	color core.Color
	faint bool
}

// classify returns the style key of every cell of the device's screen in
// row-major order. Cells in the far part of the depth range are faint.
func classify(dev *soft.Device) []cellStyle {
	s := dev.Screen()
	w, h := s.Width(), s.Height()

	zmin, zmax := float32(1), float32(-1)
	covered := false
	for y := range h {
		for x := range w {
			if z, ok := dev.Depth(x, y); ok {
				zmin, zmax = min(zmin, z), max(zmax, z)
				covered = true
			}
		}
	}
	fog := zmin + (zmax-zmin)*fogStart

	keys := make([]cellStyle, w*h)
	for y := range h {
		for x := range w {
			k := cellStyle{color: s.GetCell(x, y).Color}
			if z, ok := dev.Depth(x, y); ok && covered && zmax > zmin {
				k.faint = z > fog
			}
			keys[y*w+x] = k
		}
	}
	return keys
}

// background converts a clear color to a lipgloss hex color.
func background(c mgl32.Vec3) lipgloss.Color {
	b := func(v float32) uint8 { return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", b(c[0]), b(c[1]), b(c[2])))
}

func (k cellStyle) style(bg lipgloss.Color) lipgloss.Style {
	st := lipgloss.NewStyle().Background(bg)
	if int(k.color) < len(ansi) && ansi[k.color] != "" {
		st = st.Foreground(lipgloss.Color(ansi[k.color]))
	}
	return st.Faint(k.faint)
}

// RenderFrame converts the device's last frame to a styled string. Runs of
// cells sharing a color and depth cue are emitted under a single style, on
// the frame's clear color.
func RenderFrame(dev *soft.Device) string {
	s := dev.Screen()
	w, h := s.Width(), s.Height()
	keys := classify(dev)
	bg := background(dev.ClearColor())
	styles := make(map[cellStyle]lipgloss.Style)

	var sb strings.Builder
	sb.Grow(w*h*2 + h)
	var run strings.Builder
	for y := range h {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < w; {
			k := keys[y*w+x]
			run.Reset()
			for ; x < w && keys[y*w+x] == k; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			st, ok := styles[k]
			if !ok {
				st = k.style(bg)
				styles[k] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
