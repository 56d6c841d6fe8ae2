package core

// Direction indexes the four directional inputs of a KeyState.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// NumButtons is the number of regular buttons on the virtual game pad.
const NumButtons = 16

// KeyState is the input snapshot for one frame: a virtual game pad with two
// analog sticks, a d-pad and 16 regular buttons. It is a plain value and is
// copied into every Update call.
type KeyState struct {
	A1X, A1Y float32 // First analog stick, each axis in [-1, 1]
	A2X, A2Y float32 // Second analog stick

	Dirs    [4]bool
	Buttons [NumButtons]bool
}

// Dir reports whether the direction is held.
func (k KeyState) Dir(d Direction) bool {
	if d < DirUp || d > DirRight {
		return false
	}
	return k.Dirs[d]
}

// Button reports whether button i is held. Out-of-range indices report false.
func (k KeyState) Button(i int) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	return k.Buttons[i]
}

// SetDir marks a direction as held.
func (k *KeyState) SetDir(d Direction, held bool) {
	if d < DirUp || d > DirRight {
		return
	}
	k.Dirs[d] = held
}

// SetButton marks button i as held. Out-of-range indices are ignored.
func (k *KeyState) SetButton(i int, held bool) {
	if i < 0 || i >= NumButtons {
		return
	}
	k.Buttons[i] = held
}

// Horizontal combines the d-pad and the first analog stick into one axis
// value in [-1, 1]. Right is positive.
func (k KeyState) Horizontal() float32 {
	v := k.A1X
	if k.Dirs[DirLeft] {
		v -= 1
	}
	if k.Dirs[DirRight] {
		v += 1
	}
	return ClampF(v, -1, 1)
}

// Vertical combines the d-pad and the first analog stick. Up is positive.
func (k KeyState) Vertical() float32 {
	v := k.A1Y
	if k.Dirs[DirDown] {
		v -= 1
	}
	if k.Dirs[DirUp] {
		v += 1
	}
	return ClampF(v, -1, 1)
}

// Idle reports whether nothing is pressed and both sticks are centered.
func (k KeyState) Idle() bool {
	return k == KeyState{}
}
