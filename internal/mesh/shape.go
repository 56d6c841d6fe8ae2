package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Face is one triangle: three position indices and three normal indices.
type Face struct {
	V [3]int
	N [3]int
}

// Shape is the indexed form of a mesh. Generators fill it with vertices,
// normals and faces; Generator then streams it in interleaved form.
type Shape struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Faces     []Face
}

// NewShape creates an empty shape.
func NewShape(name string) *Shape {
	return &Shape{Name: name}
}

// AddVertex appends a position and returns its index.
func (s *Shape) AddVertex(p mgl32.Vec3) int {
	s.Positions = append(s.Positions, p)
	return len(s.Positions) - 1
}

// AddNormal appends a normal and returns its index.
func (s *Shape) AddNormal(n mgl32.Vec3) int {
	s.Normals = append(s.Normals, n)
	return len(s.Normals) - 1
}

// AddFace appends a triangle with explicit normal indices.
func (s *Shape) AddFace(i, j, k, ni, nj, nk int) {
	s.Faces = append(s.Faces, Face{V: [3]int{i, j, k}, N: [3]int{ni, nj, nk}})
}

// AddTriangle appends a triangle whose normal indices equal its vertex
// indices. Used by shapes that store one normal per vertex.
func (s *Shape) AddTriangle(i, j, k int) {
	s.AddFace(i, j, k, i, j, k)
}

// AddFlat appends a triangle that uses one normal for all three corners.
func (s *Shape) AddFlat(i, j, k, n int) {
	s.AddFace(i, j, k, n, n, n)
}

// TriangleCount returns the number of faces.
func (s *Shape) TriangleCount() int {
	return len(s.Faces)
}

// Generator streams the shape as interleaved floats.
func (s *Shape) Generator(withNormals bool) Generator {
	return func(emit Emit) {
		for _, f := range s.Faces {
			for c := 0; c < 3; c++ {
				p := s.Positions[f.V[c]]
				emit(p[0])
				emit(p[1])
				emit(p[2])
				if withNormals {
					n := s.Normals[f.N[c]]
					emit(n[0])
					emit(n[1])
					emit(n[2])
				}
			}
		}
	}
}

// Mesh builds the interleaved mesh for this shape.
func (s *Shape) Mesh(withNormals bool) (*Mesh, error) {
	stride := StridePosition
	if withNormals {
		stride = StridePositionNormal
	}
	return Build(s.Name, s.Generator(withNormals), stride)
}
