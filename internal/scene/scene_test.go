package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/mesh"
	"github.com/vovakirdan/helix/internal/render"
)

func TestPlacementsCount(t *testing.T) {
	got := Placements(mgl32.Ident4(), DefaultTower())
	if len(got) != 105 {
		t.Fatalf("placements = %d, want 105", len(got))
	}
}

func TestPlacementsLayout(t *testing.T) {
	p := DefaultTower()
	got := Placements(mgl32.Ident4(), p)

	// level 0 starts with segment 1, since segment 0 is skipped
	first := got[0].Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	angle := math.Atan2(-float64(first[2]), float64(first[0]))
	want := 2 * math.Pi / 32
	if math.Abs(angle-want) > 1e-5 {
		t.Errorf("first section at %v rad, want %v", angle, want)
	}

	// 21 sections per level; the 22nd starts level 1
	perLevel := len(got) / p.Levels
	if perLevel != 21 {
		t.Fatalf("sections per level = %d, want 21", perLevel)
	}
	for l := 0; l < p.Levels; l++ {
		origin := got[l*perLevel].Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		if wantY := float32(l) * p.LevelHeight; math.Abs(float64(origin[1]-wantY)) > 1e-5 {
			t.Errorf("level %d at y=%v, want %v", l, origin[1], wantY)
		}
	}
}

func TestPlacementsFollowShaft(t *testing.T) {
	shaft := mgl32.Translate3D(3, 0, 0)
	got := Placements(shaft, DefaultTower())
	origin := got[0].Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if origin[0] != 3 {
		t.Errorf("section origin x = %v, want 3", origin[0])
	}
}

func TestBallTransform(t *testing.T) {
	m := BallTransform(mgl32.Vec3{0, 11, 1}, 0.3)

	center := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if center.Vec3() != (mgl32.Vec3{0, 11, 1}) {
		t.Errorf("center = %v", center)
	}
	top := m.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if math.Abs(float64(top[1])-11.3) > 1e-5 {
		t.Errorf("top of ball at y=%v, want 11.3", top[1])
	}
}

func TestCameraEye(t *testing.T) {
	c := Camera{Height: 11, Distance: 5, Drop: 0.5}
	if eye := c.Eye(); !eye.ApproxEqual(mgl32.Vec3{0, 11, 5}) {
		t.Errorf("eye at yaw 0 = %v, want (0, 11, 5)", eye)
	}

	c.Yaw = math.Pi / 2
	if eye := c.Eye(); !eye.ApproxEqualThreshold(mgl32.Vec3{5, 11, 0}, 1e-5) {
		t.Errorf("eye at yaw π/2 = %v, want (5, 11, 0)", eye)
	}
}

func TestCameraLooksAtShaft(t *testing.T) {
	c := Camera{Height: 7, Distance: 5, Drop: 0.5}
	view := c.View()

	// the aim point lies on the view axis
	target := view.Mul4x1(mgl32.Vec4{0, 6.5, 0, 1})
	if math.Abs(float64(target[0])) > 1e-5 || math.Abs(float64(target[1])) > 1e-5 {
		t.Errorf("aim point off axis in view space: %v", target)
	}
	if target[2] >= 0 {
		t.Errorf("aim point behind camera: %v", target)
	}
}

func TestFrameDraw(t *testing.T) {
	s, err := mesh.Sphere(6)
	if err != nil {
		t.Fatal(err)
	}
	m, err := s.Mesh(true)
	if err != nil {
		t.Fatal(err)
	}

	dev := render.NewRecorder()
	h, _ := dev.UploadMesh(m)
	p, _ := dev.CompileProgram(render.ShaderSource{Vertex: "v", Fragment: "f"})

	f := Frame{
		Static:  []Drawable{{Transform: mgl32.Ident4(), Mesh: h, Color: Blue}},
		Dynamic: []Drawable{{Transform: BallTransform(mgl32.Vec3{0, 1, 0}, 0.3), Mesh: h, Color: Red}},
		Light:   mgl32.Vec3{2, 15, -2},
		Clear:   Clear,
	}
	f.Draw(dev, p)

	calls := dev.Calls()
	if len(calls) != f.Count() {
		t.Fatalf("draw calls = %d, want %d", len(calls), f.Count())
	}
	if calls[1].Uniforms.Color != Red {
		t.Errorf("dynamic drawn with %v", calls[1].Uniforms.Color)
	}
	if calls[0].Uniforms.Light != f.Light {
		t.Errorf("light = %v", calls[0].Uniforms.Light)
	}
	if dev.ClearColor() != Clear {
		t.Errorf("clear = %v", dev.ClearColor())
	}
}
