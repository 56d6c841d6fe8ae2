package core

import "testing"

func TestKeyStateDirsAndButtons(t *testing.T) {
	var k KeyState
	if !k.Idle() {
		t.Error("zero KeyState should be idle")
	}

	k.SetDir(DirLeft, true)
	k.SetButton(3, true)
	k.SetButton(99, true) // ignored

	if !k.Dir(DirLeft) || k.Dir(DirRight) {
		t.Error("SetDir should only affect the given direction")
	}
	if !k.Button(3) || k.Button(4) || k.Button(-1) || k.Button(99) {
		t.Error("Button lookups are wrong")
	}
	if k.Idle() {
		t.Error("KeyState with input should not be idle")
	}
}

func TestKeyStateAxes(t *testing.T) {
	tests := []struct {
		name string
		k    KeyState
		h, v float32
	}{
		{"idle", KeyState{}, 0, 0},
		{"dpad right", KeyState{Dirs: [4]bool{DirRight: true}}, 1, 0},
		{"dpad up", KeyState{Dirs: [4]bool{DirUp: true}}, 0, 1},
		{"stick half left", KeyState{A1X: -0.5}, -0.5, 0},
		{"stick and dpad saturate", KeyState{A1X: 0.8, Dirs: [4]bool{DirRight: true}}, 1, 0},
		{"opposing cancel", KeyState{Dirs: [4]bool{DirLeft: true, DirRight: true}}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.k.Horizontal(); got != tc.h {
				t.Errorf("Horizontal() = %v, expected %v", got, tc.h)
			}
			if got := tc.k.Vertical(); got != tc.v {
				t.Errorf("Vertical() = %v, expected %v", got, tc.v)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if DirUp.String() != "Up" || DirRight.String() != "Right" || Direction(9).String() != "Unknown" {
		t.Error("Direction.String mismatch")
	}
}
