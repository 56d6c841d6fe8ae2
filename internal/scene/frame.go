package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/render"
)

// Frame is everything needed to draw one picture of the scene.
type Frame struct {
	Static     []Drawable
	Dynamic    []Drawable
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Light      mgl32.Vec3
	Clear      mgl32.Vec3
}

// Draw clears the device and draws every drawable with one program.
func (f *Frame) Draw(dev render.Device, program render.ProgramHandle) {
	dev.BeginFrame(f.Clear)
	for _, set := range [][]Drawable{f.Static, f.Dynamic} {
		for _, d := range set {
			dev.Draw(program, d.Mesh, render.Uniforms{
				Model:      d.Transform,
				View:       f.View,
				Projection: f.Projection,
				Color:      d.Color,
				Light:      f.Light,
			})
		}
	}
}

// Count returns the number of drawables in the frame.
func (f *Frame) Count() int {
	return len(f.Static) + len(f.Dynamic)
}
