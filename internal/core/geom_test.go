package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp should raise to lower bound")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Error("Clamp should cut to upper bound")
	}
	if Clamp(7, 0, 10) != 7 {
		t.Error("Clamp should keep values inside the range")
	}
	if ClampF(1.5, -1, 1) != 1 || ClampF(-1.5, -1, 1) != -1 || ClampF(0.25, -1, 1) != 0.25 {
		t.Error("ClampF bounds are wrong")
	}
}

func TestColorFromRGB(t *testing.T) {
	tests := []struct {
		name      string
		r, g, b   float32
		intensity float32
		expected  Color
	}{
		{"dim red", 1, 0, 0, 0.2, ColorRed},
		{"lit red", 1, 0, 0, 0.9, ColorBrightRed},
		{"dim blue", 0, 0, 1, 0.5, ColorBlue},
		{"lit blue", 0, 0, 1, 0.8, ColorBrightBlue},
		{"lit white", 1, 1, 1, 1, ColorBrightWhite},
		{"black stays gray", 0, 0.1, 0, 1, ColorGray},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ColorFromRGB(tc.r, tc.g, tc.b, tc.intensity); got != tc.expected {
				t.Errorf("ColorFromRGB = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestRuntimeConfigAspect(t *testing.T) {
	cfg := RuntimeConfig{ScreenW: 80, ScreenH: 20, CellAspect: 2}
	if got := cfg.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, expected 2", got)
	}

	pixels := RuntimeConfig{ScreenW: 800, ScreenH: 600, CellAspect: 1}
	if got := pixels.Aspect(); got < 1.333 || got > 1.334 {
		t.Errorf("Aspect() = %v, expected 4/3", got)
	}

	if got := (RuntimeConfig{}).Aspect(); got < 1.333 || got > 1.334 {
		t.Errorf("zero config should fall back to 4/3, got %v", got)
	}
}

func TestRuntimeConfigFrameMillis(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).FrameMillis(); got != 20 {
		t.Errorf("FrameMillis() = %d, expected 20", got)
	}
	if got := (RuntimeConfig{}).FrameMillis(); got != 16 {
		t.Errorf("FrameMillis() with zero tick rate = %d, expected 16", got)
	}
}
