package core

// RuntimeConfig describes the surface a frontend offers to the host.
// Modules read the aspect ratio from it to build their projection.
type RuntimeConfig struct {
	ScreenW  int // Width in cells (terminal) or pixels (window)
	ScreenH  int // Height in cells (terminal) or pixels (window)
	TickRate int // Frames per second requested from the frontend
	// CellAspect is the height/width ratio of one cell. Terminal glyphs are
	// roughly twice as tall as they are wide; pixels are square.
	CellAspect float32
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		CellAspect: 2.0,
	}
}

// Aspect returns the visible width/height ratio of the surface.
func (c RuntimeConfig) Aspect() float32 {
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return 4.0 / 3.0
	}
	cell := c.CellAspect
	if cell <= 0 {
		cell = 1
	}
	return float32(c.ScreenW) / (float32(c.ScreenH) * cell)
}

// FrameMillis returns the nominal frame duration in milliseconds.
func (c RuntimeConfig) FrameMillis() uint64 {
	if c.TickRate <= 0 {
		return 16
	}
	return uint64(1000 / c.TickRate)
}
