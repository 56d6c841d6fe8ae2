package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/mesh"
)

func testMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	s, err := mesh.Cylinder(8, 1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := s.Mesh(true)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestLoadShaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultVertexShader), []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadShaders(dir, "", "")
	if !errors.Is(err, ErrShaderNotFound) {
		t.Fatalf("expected ErrShaderNotFound for missing fragment shader, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultFragmentShader), []byte("out vec3 color;"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := LoadShaders(dir, "", "")
	if err != nil {
		t.Fatalf("LoadShaders() failed: %v", err)
	}
	if src.Vertex != "void main() {}" || src.Fragment != "out vec3 color;" {
		t.Errorf("unexpected sources: %+v", src)
	}
}

func TestRecorderTracksHandles(t *testing.T) {
	r := NewRecorder()
	m := testMesh(t)

	h1, err := r.UploadMesh(m)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := r.UploadMesh(m)
	p, err := r.CompileProgram(ShaderSource{Vertex: "v", Fragment: "f"})
	if err != nil {
		t.Fatal(err)
	}
	if h1 == 0 || h2 == 0 || p == 0 || h1 == h2 {
		t.Fatalf("bad handles %d %d %d", h1, h2, p)
	}
	if r.Live() != 3 {
		t.Errorf("Live() = %d, want 3", r.Live())
	}

	r.BeginFrame(mgl32.Vec3{0, 0.1, 0})
	r.Draw(p, h1, Uniforms{Model: mgl32.Ident4()})
	r.Draw(p, h2, Uniforms{})
	if len(r.Calls()) != 2 {
		t.Errorf("Calls() = %d, want 2", len(r.Calls()))
	}
	if r.Triangles() != 2*m.TriangleCount() {
		t.Errorf("Triangles() = %d, want %d", r.Triangles(), 2*m.TriangleCount())
	}

	r.DeleteMesh(h1)
	r.DeleteMesh(h2)
	r.DeleteProgram(p)
	if r.Live() != 0 {
		t.Errorf("Live() = %d after release", r.Live())
	}
	if r.Invalid() != 0 {
		t.Errorf("Invalid() = %d", r.Invalid())
	}

	r.DeleteMesh(h1)
	r.BeginFrame(mgl32.Vec3{})
	r.Draw(p, h1, Uniforms{})
	if r.Invalid() != 2 {
		t.Errorf("Invalid() = %d, want 2", r.Invalid())
	}
	if len(r.Calls()) != 0 {
		t.Error("draw with released handles was recorded")
	}
}

func TestRecorderCompileFailure(t *testing.T) {
	r := NewRecorder()
	r.CompileErr = errors.New("syntax error")

	_, err := r.CompileProgram(ShaderSource{Vertex: "v", Fragment: "f"})
	if !errors.Is(err, ErrShaderCompile) {
		t.Errorf("expected ErrShaderCompile, got %v", err)
	}

	r.CompileErr = nil
	if _, err := r.CompileProgram(ShaderSource{}); !errors.Is(err, ErrShaderCompile) {
		t.Errorf("expected ErrShaderCompile for empty source, got %v", err)
	}
}
