package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func vec(x, y, z float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// Cylinder builds a unit-radius cylinder standing on the XZ plane, from y=0 to
// y=h, with k rim segments. Caps are fans around a center vertex and use flat
// normals; the side uses radial normals.
func Cylinder(k int, h float32) (*Shape, error) {
	if k < 3 {
		return nil, fmt.Errorf("mesh: cylinder needs at least 3 segments, got %d", k)
	}
	if h <= 0 {
		return nil, fmt.Errorf("mesh: cylinder height must be positive, got %g", h)
	}

	s := NewShape("cylinder")
	step := 2 * math.Pi / float64(k)

	// v0 bottom center, v1..vk bottom rim, v(k+1) top center, v(k+2).. top rim.
	s.AddVertex(mgl32.Vec3{})
	for i := 0; i < k; i++ {
		a := float64(i) * step
		s.AddVertex(vec(math.Cos(a), 0, math.Sin(a)))
	}
	s.AddVertex(mgl32.Vec3{0, h, 0})
	for i := 0; i < k; i++ {
		a := float64(i) * step
		s.AddVertex(vec(math.Cos(a), float64(h), math.Sin(a)))
	}

	// n0 down, n1..nk radial (matching the rim vertices), n(k+1) up.
	down := s.AddNormal(mgl32.Vec3{0, -1, 0})
	for i := 0; i < k; i++ {
		a := float64(i) * step
		s.AddNormal(vec(math.Cos(a), 0, math.Sin(a)))
	}
	up := s.AddNormal(mgl32.Vec3{0, 1, 0})

	o := k + 1
	for i := 1; i <= k; i++ {
		next := i%k + 1
		s.AddFlat(next, 0, i, down)
		s.AddFlat(o+i, o, o+next, up)
		s.AddFace(i, o+i, next, i, i, next)
		s.AddFace(o+next, next, o+i, next, next, i)
	}

	return s, nil
}

// Sphere builds a unit sphere from k latitude rings of k vertices each plus a
// south pole vertex. Ring 0 sits on the north pole, so the strip between ring
// 0 and ring 1 contains k zero-area triangles.
func Sphere(k int) (*Shape, error) {
	if k < 3 {
		return nil, fmt.Errorf("mesh: sphere needs at least 3 rings, got %d", k)
	}

	s := NewShape("sphere")
	for i := 0; i < k; i++ {
		phi := math.Pi/2 - float64(i)*math.Pi/float64(k)
		y, r := math.Sin(phi), math.Cos(phi)
		for j := 0; j < k; j++ {
			t := float64(j) * 2 * math.Pi / float64(k)
			p := vec(r*math.Cos(t), y, r*math.Sin(t))
			s.AddVertex(p)
			s.AddNormal(p)
		}
	}
	pole := s.AddVertex(mgl32.Vec3{0, -1, 0})
	s.AddNormal(mgl32.Vec3{0, -1, 0})

	at := func(i, j int) int { return i*k + j }
	for i := 1; i < k; i++ {
		for j := 0; j < k; j++ {
			p := (j + k - 1) % k
			s.AddTriangle(at(i, j), at(i, p), at(i-1, j))
			s.AddTriangle(at(i-1, p), at(i-1, j), at(i, p))
		}
	}
	for j := 0; j < k; j++ {
		p := (j + k - 1) % k
		s.AddTriangle(at(k-1, p), at(k-1, j), pole)
	}

	return s, nil
}

// PlatformParams describes one platform ring section: an annular slab between
// radii R1 and R2, Height thick, spanning Arc radians sampled at Samples angles.
type PlatformParams struct {
	Samples int
	Height  float32
	R1      float32
	R2      float32
	Arc     float32
}

// DefaultPlatform returns the section used by the tower: one 32nd of a ring.
func DefaultPlatform() PlatformParams {
	return PlatformParams{
		Samples: 5,
		Height:  0.1,
		R1:      1,
		R2:      2,
		Arc:     2 * math.Pi / 32,
	}
}

// Validate checks that the parameters describe a non-degenerate slab.
func (p PlatformParams) Validate() error {
	switch {
	case p.Samples < 2:
		return fmt.Errorf("mesh: platform needs at least 2 samples, got %d", p.Samples)
	case p.Height <= 0:
		return fmt.Errorf("mesh: platform height must be positive, got %g", p.Height)
	case p.R1 <= 0 || p.R2 <= p.R1:
		return fmt.Errorf("mesh: platform radii must satisfy 0 < r1 < r2, got %g, %g", p.R1, p.R2)
	case p.Arc <= 0 || p.Arc >= 2*math.Pi:
		return fmt.Errorf("mesh: platform arc must be in (0, 2π), got %g", p.Arc)
	}
	return nil
}

// PlatformSection builds a platform ring section. Vertices form four rings of
// Samples each: bottom inner, bottom outer, top inner, top outer.
func PlatformSection(p PlatformParams) (*Shape, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	k := p.Samples
	delta := float64(p.Arc) / float64(k-1)
	s := NewShape("platform")

	rings := [4]struct{ r, y float64 }{
		{float64(p.R1), 0},
		{float64(p.R2), 0},
		{float64(p.R1), float64(p.Height)},
		{float64(p.R2), float64(p.Height)},
	}
	for _, ring := range rings {
		for i := 0; i < k; i++ {
			a := float64(i) * delta
			s.AddVertex(vec(ring.r*math.Cos(a), ring.y, ring.r*math.Sin(a)))
		}
	}

	bottom := s.AddNormal(mgl32.Vec3{0, -1, 0})
	top := s.AddNormal(mgl32.Vec3{0, 1, 0})
	for i := 0; i < k; i++ {
		a := float64(i) * delta
		s.AddNormal(vec(-math.Cos(a), 0, -math.Sin(a)))
	}
	for i := 0; i < k; i++ {
		a := float64(i) * delta
		s.AddNormal(vec(math.Cos(a), 0, math.Sin(a)))
	}
	endA := s.AddNormal(mgl32.Vec3{0, 0, -1})
	end := float64(k-1) * delta
	endB := s.AddNormal(vec(-math.Sin(end), 0, math.Cos(end)))

	inner := func(i int) int { return 2 + i }
	outer := func(i int) int { return k + 2 + i }

	for i := 0; i < k-1; i++ {
		s.AddFlat(i, k+i, i+1, bottom)
		s.AddFlat(i+1, k+i, k+i+1, bottom)
	}
	for i := 0; i < k-1; i++ {
		s.AddFlat(2*k+i+1, 3*k+i, 2*k+i, top)
		s.AddFlat(3*k+i+1, 3*k+i, 2*k+i+1, top)
	}
	for i := 0; i < k-1; i++ {
		s.AddFace(i+1, 2*k+i, i, inner(i+1), inner(i), inner(i))
		s.AddFace(2*k+i+1, 2*k+i, i+1, inner(i+1), inner(i), inner(i+1))
		s.AddFace(k+i, 3*k+i, k+i+1, outer(i), outer(i), outer(i+1))
		s.AddFace(k+i+1, 3*k+i, 3*k+i+1, outer(i+1), outer(i), outer(i+1))
	}
	s.AddFlat(3*k, k, 0, endA)
	s.AddFlat(2*k, 3*k, 0, endA)
	s.AddFlat(k-1, 2*k-1, 4*k-1, endB)
	s.AddFlat(k-1, 4*k-1, 3*k-1, endB)

	return s, nil
}
