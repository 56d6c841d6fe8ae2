package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/mesh"
)

// DrawCall is one recorded Draw.
type DrawCall struct {
	Program  ProgramHandle
	Mesh     MeshHandle
	Uniforms Uniforms
}

// Recorder is a Device that draws nothing. It records the calls of the
// current frame and tracks live handles so tests and the headless frontend
// can detect leaks.
type Recorder struct {
	// CompileErr, when set, makes CompileProgram fail with ErrShaderCompile.
	CompileErr error

	next      uint32
	meshes    map[MeshHandle]int // handle -> triangle count
	programs  map[ProgramHandle]struct{}
	calls     []DrawCall
	clear     mgl32.Vec3
	frames    int
	uploads   int
	invalid   int
	triangles int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		meshes:   make(map[MeshHandle]int),
		programs: make(map[ProgramHandle]struct{}),
	}
}

func (r *Recorder) UploadMesh(m *mesh.Mesh) (MeshHandle, error) {
	if m == nil || len(m.Data) == 0 {
		return 0, fmt.Errorf("render: upload empty mesh")
	}
	r.next++
	h := MeshHandle(r.next)
	r.meshes[h] = m.TriangleCount()
	r.uploads++
	return h, nil
}

func (r *Recorder) DeleteMesh(h MeshHandle) {
	if _, ok := r.meshes[h]; !ok {
		r.invalid++
		return
	}
	delete(r.meshes, h)
}

func (r *Recorder) CompileProgram(src ShaderSource) (ProgramHandle, error) {
	if r.CompileErr != nil {
		return 0, fmt.Errorf("%w: %v", ErrShaderCompile, r.CompileErr)
	}
	if src.Vertex == "" || src.Fragment == "" {
		return 0, fmt.Errorf("%w: empty source", ErrShaderCompile)
	}
	r.next++
	p := ProgramHandle(r.next)
	r.programs[p] = struct{}{}
	return p, nil
}

func (r *Recorder) DeleteProgram(p ProgramHandle) {
	if _, ok := r.programs[p]; !ok {
		r.invalid++
		return
	}
	delete(r.programs, p)
}

func (r *Recorder) BeginFrame(clear mgl32.Vec3) {
	r.frames++
	r.clear = clear
	r.calls = r.calls[:0]
	r.triangles = 0
}

func (r *Recorder) Draw(p ProgramHandle, m MeshHandle, u Uniforms) {
	tris, ok := r.meshes[m]
	if _, live := r.programs[p]; !ok || !live {
		r.invalid++
		return
	}
	r.calls = append(r.calls, DrawCall{Program: p, Mesh: m, Uniforms: u})
	r.triangles += tris
}

// Calls returns the draw calls issued since the last BeginFrame.
func (r *Recorder) Calls() []DrawCall {
	return r.calls
}

// LiveMeshes returns the number of uploaded meshes not yet deleted.
func (r *Recorder) LiveMeshes() int { return len(r.meshes) }

// LivePrograms returns the number of compiled programs not yet deleted.
func (r *Recorder) LivePrograms() int { return len(r.programs) }

// Live returns the total number of unreleased handles.
func (r *Recorder) Live() int { return len(r.meshes) + len(r.programs) }

// Frames returns how many frames were begun.
func (r *Recorder) Frames() int { return r.frames }

// Uploads returns how many meshes were uploaded over the recorder's lifetime.
func (r *Recorder) Uploads() int { return r.uploads }

// Invalid counts operations on unknown or released handles.
func (r *Recorder) Invalid() int { return r.invalid }

// Triangles returns the triangles submitted in the current frame.
func (r *Recorder) Triangles() int { return r.triangles }

// ClearColor returns the clear color of the current frame.
func (r *Recorder) ClearColor() mgl32.Vec3 { return r.clear }
