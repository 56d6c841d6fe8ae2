package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotClosed is returned by Check for meshes that are not closed, consistently
// oriented 2-manifolds.
var ErrNotClosed = errors.New("mesh: not a closed oriented surface")

// weldScale quantizes positions to 1e-4 before comparing them.
const weldScale = 1e4

// Report summarizes the topology of a mesh.
type Report struct {
	Vertices       int
	Triangles      int
	Welded         int // triangles left after welding and dropping degenerate ones
	OpenEdges      int // undirected edges not shared by exactly two triangles
	Misoriented    int // directed edges used more than once
	FlippedNormals int // vertex normals pointing against their face
	Volume         float64
}

// Closed reports whether the surface is watertight and consistently wound.
func (r Report) Closed() bool {
	return r.OpenEdges == 0 && r.Misoriented == 0
}

// Outward reports whether the winding encloses positive volume.
func (r Report) Outward() bool {
	return r.Volume > 0
}

// Err returns nil for closed outward meshes and a descriptive error otherwise.
func (r Report) Err() error {
	switch {
	case !r.Closed():
		return fmt.Errorf("%w: %d open edges, %d misoriented edges", ErrNotClosed, r.OpenEdges, r.Misoriented)
	case !r.Outward():
		return fmt.Errorf("%w: signed volume %.4f", ErrNotClosed, r.Volume)
	}
	return nil
}

func (r Report) String() string {
	return fmt.Sprintf("vertices=%d triangles=%d welded=%d open=%d misoriented=%d flipped=%d volume=%.4f",
		r.Vertices, r.Triangles, r.Welded, r.OpenEdges, r.Misoriented, r.FlippedNormals, r.Volume)
}

type weldKey [3]int64

type edge struct{ a, b int }

// Check welds coincident positions, drops zero-area triangles and verifies that
// every remaining edge is shared by exactly two triangles in opposite
// directions.
func Check(m *Mesh) (Report, error) {
	r := Report{Vertices: m.VertexCount(), Triangles: m.TriangleCount()}

	ids := make(map[weldKey]int)
	weld := func(p mgl32.Vec3) int {
		var key weldKey
		for c := 0; c < 3; c++ {
			key[c] = int64(math.Round(float64(p[c]) * weldScale))
		}
		id, ok := ids[key]
		if !ok {
			id = len(ids)
			ids[key] = id
		}
		return id
	}

	undirected := make(map[edge]int)
	directed := make(map[edge]int)

	for t := 0; t < r.Triangles; t++ {
		tri := m.Triangle(t)
		r.Volume += signedVolume(tri)

		a, b, c := weld(tri[0]), weld(tri[1]), weld(tri[2])
		if a == b || b == c || c == a {
			continue
		}
		r.Welded++

		for _, e := range [3]edge{{a, b}, {b, c}, {c, a}} {
			directed[e]++
			if e.a > e.b {
				e = edge{e.b, e.a}
			}
			undirected[e]++
		}

		if m.HasNormals() {
			face := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
			for v := 0; v < 3; v++ {
				if face.Dot(m.Normal(3*t+v)) <= 0 {
					r.FlippedNormals++
				}
			}
		}
	}

	for _, n := range undirected {
		if n != 2 {
			r.OpenEdges++
		}
	}
	for _, n := range directed {
		if n != 1 {
			r.Misoriented++
		}
	}

	return r, r.Err()
}

func signedVolume(tri [3]mgl32.Vec3) float64 {
	a, b, c := tri[0], tri[1], tri[2]
	ax, ay, az := float64(a[0]), float64(a[1]), float64(a[2])
	bx, by, bz := float64(b[0]), float64(b[1]), float64(b[2])
	cx, cy, cz := float64(c[0]), float64(c[1]), float64(c[2])
	return (ax*(by*cz-bz*cy) + ay*(bz*cx-bx*cz) + az*(bx*cy-by*cx)) / 6
}
