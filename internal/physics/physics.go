// Package physics integrates the falling ball with a semi-implicit Euler step
// and a hard floor.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Body is a point mass driven by an accumulated force.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Force    mgl32.Vec3
}

// Params holds the tuning constants of the simulation.
type Params struct {
	Mass        float32
	Gravity     mgl32.Vec3
	FloorY      float32
	LaunchForce mgl32.Vec3
}

// DefaultParams returns the default tower physics.
func DefaultParams() Params {
	return Params{
		Mass:        2,
		Gravity:     mgl32.Vec3{0, -9.8, 0},
		FloorY:      0.3,
		LaunchForce: mgl32.Vec3{0, 10, 0},
	}
}

// Step advances the body by dt seconds and reports whether it hit the floor.
//
// Velocity integrates the current force before position integrates the new
// velocity; gravity then accumulates into the force, so it acts on the body
// one step late. On contact the body is clamped to the floor, stopped and
// given the launch force for the next step.
func Step(b *Body, p Params, dt float32) bool {
	b.Velocity = b.Velocity.Add(b.Force.Mul(dt / p.Mass))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.Force = b.Force.Add(p.Gravity.Mul(p.Mass * dt))

	if b.Position.Y() < p.FloorY {
		b.Position[1] = p.FloorY
		b.Velocity = mgl32.Vec3{}
		b.Force = p.LaunchForce
		return true
	}
	return false
}

// FollowCamera lowers the camera height h so it stays offset above a falling
// ball. It never raises the camera.
func FollowCamera(h, ballY, offset float32) float32 {
	if ballY <= h-offset {
		return ballY + offset
	}
	return h
}

// Millis converts a frame duration in milliseconds to seconds.
func Millis(ms uint64) float32 {
	return float32(ms) / 1000
}
