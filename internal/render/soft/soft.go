// Package soft is a software render device. It rasterizes meshes into a
// core.Screen with a depth buffer and Lambert shading mapped onto an ASCII
// ramp, so the scene can be shown in a terminal.
package soft

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/mesh"
	"github.com/vovakirdan/helix/internal/render"
)

// Ramp orders glyphs from dark to bright.
const Ramp = " .:-=+*#%@"

const (
	ambient = 0.1
	diffuse = 0.9
	minW    = 1e-4
)

// Device rasterizes into a screen. Shader sources are accepted but not
// compiled; every program shades the same way.
type Device struct {
	screen *core.Screen
	depth  []float32
	clear  mgl32.Vec3

	next     uint32
	meshes   map[render.MeshHandle]*mesh.Mesh
	programs map[render.ProgramHandle]struct{}

	drawn  int
	culled int
}

// New creates a device drawing into screen.
func New(screen *core.Screen) *Device {
	return &Device{
		screen:   screen,
		meshes:   make(map[render.MeshHandle]*mesh.Mesh),
		programs: make(map[render.ProgramHandle]struct{}),
	}
}

// Screen returns the target screen.
func (d *Device) Screen() *core.Screen { return d.screen }

func (d *Device) UploadMesh(m *mesh.Mesh) (render.MeshHandle, error) {
	if m == nil || len(m.Data) == 0 {
		return 0, fmt.Errorf("soft: upload empty mesh")
	}
	d.next++
	h := render.MeshHandle(d.next)
	d.meshes[h] = m
	return h, nil
}

func (d *Device) DeleteMesh(h render.MeshHandle) {
	delete(d.meshes, h)
}

func (d *Device) CompileProgram(src render.ShaderSource) (render.ProgramHandle, error) {
	if src.Vertex == "" || src.Fragment == "" {
		return 0, fmt.Errorf("%w: empty source", render.ErrShaderCompile)
	}
	d.next++
	p := render.ProgramHandle(d.next)
	d.programs[p] = struct{}{}
	return p, nil
}

func (d *Device) DeleteProgram(p render.ProgramHandle) {
	delete(d.programs, p)
}

// Live returns the number of unreleased handles.
func (d *Device) Live() int { return len(d.meshes) + len(d.programs) }

// Stats returns the triangles rasterized and culled since BeginFrame.
func (d *Device) Stats() (drawn, culled int) { return d.drawn, d.culled }

// ClearColor returns the clear color of the current frame.
func (d *Device) ClearColor() mgl32.Vec3 { return d.clear }

// Depth returns the NDC depth of the nearest fragment in cell (x, y) and
// whether any geometry covered the cell this frame.
func (d *Device) Depth(x, y int) (float32, bool) {
	w, h := d.screen.Width(), d.screen.Height()
	if x < 0 || y < 0 || x >= w || y >= h || len(d.depth) != w*h {
		return 0, false
	}
	z := d.depth[y*w+x]
	return z, z != math.MaxFloat32
}

func (d *Device) BeginFrame(clear mgl32.Vec3) {
	d.clear = clear
	d.screen.Clear()
	n := d.screen.Width() * d.screen.Height()
	if cap(d.depth) < n {
		d.depth = make([]float32, n)
	}
	d.depth = d.depth[:n]
	for i := range d.depth {
		d.depth[i] = math.MaxFloat32
	}
	d.drawn, d.culled = 0, 0
}

func (d *Device) Draw(p render.ProgramHandle, h render.MeshHandle, u render.Uniforms) {
	m, ok := d.meshes[h]
	if _, live := d.programs[p]; !ok || !live {
		return
	}
	if len(d.depth) != d.screen.Width()*d.screen.Height() {
		d.BeginFrame(mgl32.Vec3{})
	}

	mvp := u.Projection.Mul4(u.View).Mul4(u.Model)
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		var clip [3]mgl32.Vec4
		visible := true
		for i, v := range tri {
			clip[i] = mvp.Mul4x1(v.Vec4(1))
			if clip[i].W() <= minW {
				visible = false
				break
			}
		}
		if !visible {
			d.culled++
			continue
		}

		var ndc [3]mgl32.Vec3
		for i, c := range clip {
			ndc[i] = c.Vec3().Mul(1 / c.W())
		}
		area := (ndc[1].X()-ndc[0].X())*(ndc[2].Y()-ndc[0].Y()) -
			(ndc[2].X()-ndc[0].X())*(ndc[1].Y()-ndc[0].Y())
		if area <= 0 {
			d.culled++
			continue
		}

		intensity := shade(m, t, tri, u)
		d.fill(ndc, intensity, u.Color)
		d.drawn++
	}
}

// shade returns the Lambert intensity of triangle t lit from u.Light.
func shade(m *mesh.Mesh, t int, tri [3]mgl32.Vec3, u render.Uniforms) float32 {
	var world [3]mgl32.Vec3
	for i, v := range tri {
		world[i] = u.Model.Mul4x1(v.Vec4(1)).Vec3()
	}
	var n mgl32.Vec3
	if m.HasNormals() {
		for i := 0; i < 3; i++ {
			n = n.Add(m.Normal(3*t + i))
		}
		n = u.Model.Mul4x1(n.Vec4(0)).Vec3()
	} else {
		n = world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
	}
	if n.Len() == 0 {
		return ambient
	}
	center := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
	l := u.Light.Sub(center)
	if l.Len() == 0 {
		return ambient + diffuse
	}
	return ambient + diffuse*max(0, n.Normalize().Dot(l.Normalize()))
}

func (d *Device) fill(ndc [3]mgl32.Vec3, intensity float32, color mgl32.Vec3) {
	w, h := d.screen.Width(), d.screen.Height()
	if w == 0 || h == 0 {
		return
	}
	var sx, sy [3]float32
	for i, v := range ndc {
		sx[i] = (v.X() + 1) / 2 * float32(w)
		sy[i] = (1 - v.Y()) / 2 * float32(h)
	}
	minX := core.Clamp(int(floor(min(sx[0], sx[1], sx[2]))), 0, w-1)
	maxX := core.Clamp(int(floor(max(sx[0], sx[1], sx[2]))), 0, w-1)
	minY := core.Clamp(int(floor(min(sy[0], sy[1], sy[2]))), 0, h-1)
	maxY := core.Clamp(int(floor(max(sy[0], sy[1], sy[2]))), 0, h-1)

	area := edge(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2])
	if area == 0 {
		return
	}
	glyph := rune(Ramp[core.Clamp(int(intensity*float32(len(Ramp)-1)+0.5), 1, len(Ramp)-1)])
	cell := core.Cell{Rune: glyph, Color: core.ColorFromRGB(color[0], color[1], color[2], intensity)}

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(sx[1], sy[1], sx[2], sy[2], px, py) / area
			w1 := edge(sx[2], sy[2], sx[0], sy[0], px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*ndc[0].Z() + w1*ndc[1].Z() + w2*ndc[2].Z()
			if z < -1 || z > 1 {
				continue
			}
			i := y*w + x
			if z >= d.depth[i] {
				continue
			}
			d.depth[i] = z
			d.screen.SetCell(x, y, cell)
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

var _ render.Device = (*Device)(nil)
