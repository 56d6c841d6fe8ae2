// Package scene assembles the helix tower: the shaft, the spiral of platform
// sections, the ball and the orbiting camera.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/render"
)

// Colors used by the tower.
var (
	Blue  = mgl32.Vec3{0, 0, 1}
	Red   = mgl32.Vec3{1, 0, 0}
	Clear = mgl32.Vec3{0, 0.1, 0}
)

// Drawable is a mesh placed in the world. It does not own the mesh handle.
type Drawable struct {
	Transform mgl32.Mat4
	Mesh      render.MeshHandle
	Color     mgl32.Vec3
}

// TowerParams controls how platform sections are laid out around the shaft.
type TowerParams struct {
	Segments    int     // sections per full turn
	Levels      int     // number of stacked rings
	SkipEvery   int     // segments with index%SkipEvery == 0 are left open
	LevelHeight float32 // vertical distance between rings
}

// DefaultTower returns 32 segments on 5 levels two units apart, with every
// third segment left open.
func DefaultTower() TowerParams {
	return TowerParams{
		Segments:    32,
		Levels:      5,
		SkipEvery:   3,
		LevelHeight: 2,
	}
}

// Placements returns the model transform of every platform section, level by
// level, relative to the shaft transform.
func Placements(shaft mgl32.Mat4, p TowerParams) []mgl32.Mat4 {
	if p.Segments <= 0 || p.Levels <= 0 {
		return nil
	}

	step := 2 * math.Pi / float64(p.Segments)
	out := make([]mgl32.Mat4, 0, p.Levels*p.Segments)
	for l := 0; l < p.Levels; l++ {
		base := shaft.Mul4(mgl32.Translate3D(0, float32(l)*p.LevelHeight, 0))
		for i := 0; i < p.Segments; i++ {
			if p.SkipEvery > 0 && i%p.SkipEvery == 0 {
				continue
			}
			out = append(out, base.Mul4(mgl32.HomogRotate3DY(float32(float64(i)*step))))
		}
	}
	return out
}

// BallTransform places a unit sphere of the given radius at pos.
func BallTransform(pos mgl32.Vec3, radius float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(radius, radius, radius))
}

// Camera orbits the shaft at a fixed distance, looking slightly down.
type Camera struct {
	Height   float32
	Yaw      float32 // radians around +Y, zero looks along -Z
	Distance float32
	Drop     float32 // how far below the eye the camera aims
}

// Eye returns the camera position.
func (c Camera) Eye() mgl32.Vec3 {
	s, co := math.Sincos(float64(c.Yaw))
	return mgl32.Vec3{c.Distance * float32(s), c.Height, c.Distance * float32(co)}
}

// View returns the view matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), mgl32.Vec3{0, c.Height - c.Drop, 0}, mgl32.Vec3{0, 1, 0})
}

// Lens describes the perspective projection.
type Lens struct {
	FovY float32 // degrees
	Near float32
	Far  float32
}

// DefaultLens returns a 70 degree lens with a 0.1..100 depth range.
func DefaultLens() Lens {
	return Lens{FovY: 70, Near: 0.1, Far: 100}
}

// Projection returns the projection matrix for the given aspect ratio.
func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.FovY), aspect, l.Near, l.Far)
}
