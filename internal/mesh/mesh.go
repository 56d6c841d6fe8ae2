// Package mesh builds procedural triangle meshes for the helix tower: the
// central shaft (cylinder), the ball (sphere) and the platform ring sections.
//
// Every generator emits a flat stream of interleaved floats, position.xyz
// optionally followed by normal.xyz, three vertices per triangle. Front faces
// wind counter-clockwise when seen from outside the solid.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Interleave strides, in floats per vertex.
const (
	StridePosition       = 3 // position.xyz
	StridePositionNormal = 6 // position.xyz, normal.xyz
)

// ErrRaggedStream is returned when a generator emits a float count that is not
// a whole number of triangles for the requested stride.
var ErrRaggedStream = errors.New("mesh: stream is not a whole number of triangles")

// Emit receives one float of the interleaved vertex stream.
type Emit func(float32)

// Generator produces a triangle stream by calling emit once per float.
type Generator func(emit Emit)

// Mesh is an immutable interleaved triangle buffer.
type Mesh struct {
	Name   string
	Data   []float32
	Stride int
}

// Build runs a generator and collects its output into a Mesh.
func Build(name string, gen Generator, stride int) (*Mesh, error) {
	if stride != StridePosition && stride != StridePositionNormal {
		return nil, fmt.Errorf("mesh: %s: unsupported stride %d", name, stride)
	}

	var data []float32
	gen(func(f float32) { data = append(data, f) })

	if len(data)%(3*stride) != 0 {
		return nil, fmt.Errorf("%w: %s emitted %d floats for stride %d", ErrRaggedStream, name, len(data), stride)
	}

	return &Mesh{Name: name, Data: data, Stride: stride}, nil
}

// HasNormals reports whether normals are interleaved with positions.
func (m *Mesh) HasNormals() bool {
	return m.Stride == StridePositionNormal
}

// VertexCount returns the number of emitted vertices (three per triangle).
func (m *Mesh) VertexCount() int {
	if m.Stride == 0 {
		return 0
	}
	return len(m.Data) / m.Stride
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Position returns the position of emitted vertex i.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	o := i * m.Stride
	return mgl32.Vec3{m.Data[o], m.Data[o+1], m.Data[o+2]}
}

// Normal returns the normal of emitted vertex i, or the zero vector when the
// mesh carries no normals.
func (m *Mesh) Normal(i int) mgl32.Vec3 {
	if !m.HasNormals() {
		return mgl32.Vec3{}
	}
	o := i*m.Stride + 3
	return mgl32.Vec3{m.Data[o], m.Data[o+1], m.Data[o+2]}
}

// Triangle returns the three corner positions of triangle t.
func (m *Mesh) Triangle(t int) [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{m.Position(3 * t), m.Position(3*t + 1), m.Position(3*t + 2)}
}
