package mesh

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func mustMesh(t *testing.T, s *Shape, err error, withNormals bool) *Mesh {
	t.Helper()
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	m, err := s.Mesh(withNormals)
	if err != nil {
		t.Fatalf("Mesh(%v) failed: %v", withNormals, err)
	}
	return m
}

func TestFloatCountMatchesStride(t *testing.T) {
	cyl, err := Cylinder(40, 10)
	if err != nil {
		t.Fatal(err)
	}
	sph, err := Sphere(40)
	if err != nil {
		t.Fatal(err)
	}
	plat, err := PlatformSection(DefaultPlatform())
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []*Shape{cyl, sph, plat} {
		for _, withNormals := range []bool{false, true} {
			m := mustMesh(t, s, nil, withNormals)
			want := 3 * s.TriangleCount() * m.Stride
			if len(m.Data) != want {
				t.Errorf("%s normals=%v: %d floats, want %d", s.Name, withNormals, len(m.Data), want)
			}
			if m.TriangleCount() != s.TriangleCount() {
				t.Errorf("%s: mesh has %d triangles, shape has %d", s.Name, m.TriangleCount(), s.TriangleCount())
			}
		}
	}
}

func TestBuildRejectsRaggedStream(t *testing.T) {
	gen := func(emit Emit) {
		for i := 0; i < 10; i++ {
			emit(float32(i))
		}
	}
	_, err := Build("ragged", gen, StridePosition)
	if !errors.Is(err, ErrRaggedStream) {
		t.Errorf("expected ErrRaggedStream, got %v", err)
	}

	if _, err := Build("odd", gen, 4); err == nil {
		t.Error("expected error for unsupported stride")
	}
}

func TestCylinder(t *testing.T) {
	s, err := Cylinder(40, 10)
	if err != nil {
		t.Fatal(err)
	}

	if got := s.TriangleCount(); got != 160 {
		t.Errorf("triangles = %d, want 160", got)
	}
	if got := len(s.Positions); got != 82 {
		t.Errorf("vertices = %d, want 82", got)
	}

	for i, p := range s.Positions {
		if p[1] != 0 && p[1] != 10 {
			t.Errorf("vertex %d has y=%v, want 0 or 10", i, p[1])
		}
		if i == 0 || i == 41 {
			continue
		}
		r := math.Hypot(float64(p[0]), float64(p[2]))
		if math.Abs(r-1) > 1e-5 {
			t.Errorf("rim vertex %d has radius %v", i, r)
		}
	}
}

func TestSphere(t *testing.T) {
	const k = 40
	s, err := Sphere(k)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(s.Positions); got != k*k+1 {
		t.Errorf("vertices = %d, want %d", got, k*k+1)
	}
	if got := s.TriangleCount(); got != 2*k*(k-1)+k {
		t.Errorf("triangles = %d, want %d", got, 2*k*(k-1)+k)
	}

	pole := s.Positions[k*k]
	if pole != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("pole = %v, want (0,-1,0)", pole)
	}

	for i, p := range s.Positions {
		if l := p.Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("vertex %d has length %v", i, l)
		}
		if s.Normals[i] != p {
			t.Errorf("normal %d = %v, want position %v", i, s.Normals[i], p)
		}
	}

	// ring 0 collapses onto the north pole
	for j := 0; j < k; j++ {
		p := s.Positions[j]
		if math.Abs(float64(p[1])-1) > 1e-6 {
			t.Errorf("ring 0 vertex %d at y=%v", j, p[1])
		}
	}
}

func TestPlatformSection(t *testing.T) {
	p := DefaultPlatform()
	s, err := PlatformSection(p)
	if err != nil {
		t.Fatal(err)
	}

	k := p.Samples
	if got := len(s.Positions); got != 4*k {
		t.Errorf("vertices = %d, want %d", got, 4*k)
	}
	if got := s.TriangleCount(); got != 8*(k-1)+4 {
		t.Errorf("triangles = %d, want %d", got, 8*(k-1)+4)
	}
	if got := len(s.Normals); got != 2*k+4 {
		t.Errorf("normals = %d, want %d", got, 2*k+4)
	}

	// first and last samples bound the arc
	last := s.Positions[k-1]
	angle := math.Atan2(float64(last[2]), float64(last[0]))
	if math.Abs(angle-float64(p.Arc)) > 1e-5 {
		t.Errorf("last sample at %v rad, want %v", angle, p.Arc)
	}
}

func TestPlatformParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlatformParams)
	}{
		{"one sample", func(p *PlatformParams) { p.Samples = 1 }},
		{"flat", func(p *PlatformParams) { p.Height = 0 }},
		{"inverted radii", func(p *PlatformParams) { p.R1, p.R2 = 2, 1 }},
		{"full circle", func(p *PlatformParams) { p.Arc = 2 * math.Pi }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPlatform()
			tt.mutate(&p)
			if _, err := PlatformSection(p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestShapesAreClosedAndOutward(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Shape, error)
	}{
		{"cylinder k=3", func() (*Shape, error) { return Cylinder(3, 10) }},
		{"cylinder k=40", func() (*Shape, error) { return Cylinder(40, 10) }},
		{"sphere k=3", func() (*Shape, error) { return Sphere(3) }},
		{"sphere k=4", func() (*Shape, error) { return Sphere(4) }},
		{"sphere k=40", func() (*Shape, error) { return Sphere(40) }},
		{"platform default", func() (*Shape, error) { return PlatformSection(DefaultPlatform()) }},
		{"platform 2 samples", func() (*Shape, error) {
			p := DefaultPlatform()
			p.Samples = 2
			return PlatformSection(p)
		}},
		{"platform 9 samples", func() (*Shape, error) {
			p := DefaultPlatform()
			p.Samples = 9
			return PlatformSection(p)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			m := mustMesh(t, s, err, true)

			r, err := Check(m)
			if err != nil {
				t.Fatalf("Check: %v (%s)", err, r)
			}
			if !r.Closed() || !r.Outward() {
				t.Errorf("report %s", r)
			}
			if r.FlippedNormals != 0 {
				t.Errorf("%d vertex normals disagree with the winding", r.FlippedNormals)
			}
		})
	}
}

func TestCheckVolumes(t *testing.T) {
	cyl, _ := Cylinder(40, 10)
	r, err := Check(mustMesh(t, cyl, nil, false))
	if err != nil {
		t.Fatal(err)
	}
	// regular 40-gon area times height
	want := 10 * 40 * math.Sin(2*math.Pi/40) / 2
	if math.Abs(r.Volume-want) > 1e-3 {
		t.Errorf("cylinder volume = %v, want %v", r.Volume, want)
	}

	sph, _ := Sphere(40)
	r, err = Check(mustMesh(t, sph, nil, false))
	if err != nil {
		t.Fatal(err)
	}
	if r.Volume <= 4 || r.Volume >= 4*math.Pi/3 {
		t.Errorf("sphere volume = %v, want just under 4π/3", r.Volume)
	}
	if r.Welded != r.Triangles-40 {
		t.Errorf("welded %d of %d triangles, want 40 degenerate ones dropped", r.Welded, r.Triangles)
	}
}

func TestCheckDetectsFlippedFace(t *testing.T) {
	s, _ := Cylinder(8, 1)
	f := &s.Faces[3]
	f.V[1], f.V[2] = f.V[2], f.V[1]

	m := mustMesh(t, s, nil, false)
	r, err := Check(m)
	if !errors.Is(err, ErrNotClosed) {
		t.Fatalf("expected ErrNotClosed, got %v", err)
	}
	if r.Misoriented == 0 {
		t.Error("expected misoriented edges")
	}
}

func TestCheckDetectsHole(t *testing.T) {
	s, _ := Sphere(6)
	s.Faces = s.Faces[:len(s.Faces)-1]

	r, err := Check(mustMesh(t, s, nil, false))
	if err == nil {
		t.Fatal("expected error for open mesh")
	}
	if r.OpenEdges != 3 {
		t.Errorf("open edges = %d, want 3", r.OpenEdges)
	}
}

func TestWriteOBJ(t *testing.T) {
	s := NewShape("tri")
	s.AddVertex(mgl32.Vec3{0, 0, 0})
	s.AddVertex(mgl32.Vec3{1, 0, 0})
	s.AddVertex(mgl32.Vec3{0, 1, 0})
	s.AddNormal(mgl32.Vec3{0, 0, 1})
	s.AddFlat(0, 1, 2, 0)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, s, true); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"v 0.0000 0.0000 0.0000",
		"v 1.0000 0.0000 0.0000",
		"v 0.0000 1.0000 0.0000",
		"vn 0.0000 0.0000 1.0000",
		"f 1//1 2//1 3//1",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("WriteOBJ with normals:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := WriteOBJ(&buf, s, false); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "vn") {
		t.Error("normals written when disabled")
	}
	if !strings.HasSuffix(buf.String(), "f 1 2 3\n") {
		t.Errorf("unexpected face line in %q", buf.String())
	}
}

func TestGeneratorStreamsNormals(t *testing.T) {
	s, _ := Sphere(4)
	m := mustMesh(t, s, nil, true)

	f := s.Faces[0]
	for c := 0; c < 3; c++ {
		if got, want := m.Position(c), s.Positions[f.V[c]]; got != want {
			t.Errorf("corner %d position %v, want %v", c, got, want)
		}
		if got, want := m.Normal(c), s.Normals[f.N[c]]; got != want {
			t.Errorf("corner %d normal %v, want %v", c, got, want)
		}
	}
}
