package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestStepMatchesClosedForm(t *testing.T) {
	p := DefaultParams()
	b := Body{
		Position: mgl32.Vec3{0, 5, 0},
		Force:    mgl32.Vec3{0, 10, 0},
	}

	const dt = 0.1
	for i := 0; i < 10; i++ {
		if Step(&b, p, dt) {
			t.Fatalf("unexpected bounce at step %d", i)
		}
	}

	// v_n = n(F0/m)dt + g dt² n(n-1)/2
	// p_n = p0 + (F0/m)dt² n(n+1)/2 + g dt³ (n+1)n(n-1)/6
	if !near(b.Velocity.Y(), 0.59, 1e-4) {
		t.Errorf("velocity = %v, want 0.59", b.Velocity.Y())
	}
	if !near(b.Position.Y(), 6.133, 1e-4) {
		t.Errorf("position = %v, want 6.133", b.Position.Y())
	}
	if !near(b.Force.Y(), 10-9.8*2*1.0, 1e-4) {
		t.Errorf("force = %v, want %v", b.Force.Y(), 10-9.8*2*1.0)
	}
}

func TestStepBounce(t *testing.T) {
	p := DefaultParams()
	b := Body{
		Position: mgl32.Vec3{0, 0.31, 1},
		Velocity: mgl32.Vec3{0, -5, 0},
	}

	if !Step(&b, p, 0.016) {
		t.Fatal("expected a bounce")
	}
	if b.Position.Y() != p.FloorY {
		t.Errorf("y = %v, want floor %v", b.Position.Y(), p.FloorY)
	}
	if b.Velocity != (mgl32.Vec3{}) {
		t.Errorf("velocity = %v, want zero", b.Velocity)
	}
	if b.Force != p.LaunchForce {
		t.Errorf("force = %v, want launch force %v", b.Force, p.LaunchForce)
	}
	if b.Position.Z() != 1 {
		t.Errorf("z changed to %v", b.Position.Z())
	}
}

func TestBallNeverBelowFloor(t *testing.T) {
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{0, 11, 1}, Force: mgl32.Vec3{0, 10, 0}}

	bounces := 0
	for i := 0; i < 5000; i++ {
		if Step(&b, p, 0.016) {
			bounces++
		}
		if b.Position.Y() < p.FloorY {
			t.Fatalf("step %d: y = %v below floor", i, b.Position.Y())
		}
	}
	if bounces == 0 {
		t.Error("ball never reached the floor")
	}
}

func TestFollowCamera(t *testing.T) {
	tests := []struct {
		name     string
		h, ballY float32
		want     float32
	}{
		{"ball above", 11, 10.5, 11},
		{"ball at threshold", 11, 10, 11},
		{"ball below", 11, 8, 9},
		{"ball far above", 2, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FollowCamera(tt.h, tt.ballY, 1); got != tt.want {
				t.Errorf("FollowCamera(%v, %v) = %v, want %v", tt.h, tt.ballY, got, tt.want)
			}
		})
	}
}

func TestCameraNeverRises(t *testing.T) {
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{0, 11, 1}, Force: mgl32.Vec3{0, 10, 0}}
	h := float32(11)

	for i := 0; i < 2000; i++ {
		Step(&b, p, 0.016)
		next := FollowCamera(h, b.Position.Y(), 1)
		if next > h {
			t.Fatalf("step %d: camera rose from %v to %v", i, h, next)
		}
		h = next
	}
}

func TestMillis(t *testing.T) {
	if got := Millis(16); !near(got, 0.016, 1e-7) {
		t.Errorf("Millis(16) = %v", got)
	}
}
