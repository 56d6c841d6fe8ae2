// Package render defines the device contract modules draw through, the shader
// source loader, and Recorder, a null device that tracks handle lifetimes.
package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/mesh"
)

var (
	// ErrShaderNotFound is returned when a shader source file is missing.
	ErrShaderNotFound = errors.New("render: shader source not found")
	// ErrShaderCompile is returned when a program fails to compile or link.
	ErrShaderCompile = errors.New("render: shader compile failed")
	// ErrUnknownHandle is returned for handles the device never issued or
	// already released.
	ErrUnknownHandle = errors.New("render: unknown handle")
)

// MeshHandle identifies an uploaded mesh. Zero is never a valid handle.
type MeshHandle uint32

// ProgramHandle identifies a compiled shader program. Zero is never valid.
type ProgramHandle uint32

// ShaderSource is a vertex/fragment shader pair.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// Uniforms are the per-draw inputs of the lighting program.
type Uniforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Color      mgl32.Vec3
	Light      mgl32.Vec3 // world-space light position
}

// Device is the rendering backend a module draws through. Every handle a
// module obtains must be released by that module before it is unloaded.
type Device interface {
	UploadMesh(m *mesh.Mesh) (MeshHandle, error)
	DeleteMesh(h MeshHandle)
	CompileProgram(src ShaderSource) (ProgramHandle, error)
	DeleteProgram(p ProgramHandle)
	BeginFrame(clear mgl32.Vec3)
	Draw(p ProgramHandle, m MeshHandle, u Uniforms)
}
