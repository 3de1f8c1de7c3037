package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a triangle mesh primitive. Unlike the analytic unit primitives, a
// mesh carries its own object-space geometry, but it is placed in the scene
// through a Shape like everything else. Per-vertex normals and texture
// coordinates are optional: hits interpolate them when present and fall back
// to the face normal and the hit's barycentric coordinate otherwise.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []int
	Normals  []mgl32.Vec3 // aligned with Vertices when non-empty
	UVs      []mgl32.Vec2 // aligned with Vertices when non-empty
}

// NewMesh creates a mesh from vertices and triangle indices. Normals and uvs
// may be nil; when given they must pair up with the vertices.
func NewMesh(vertices []mgl32.Vec3, indices []int, normals []mgl32.Vec3, uvs []mgl32.Vec2) (*Mesh, error) {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh index count must be a positive multiple of 3, got %d", len(indices))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("mesh index %d out of range (%d vertices)", idx, len(vertices))
		}
	}
	if len(normals) > 0 && len(normals) != len(vertices) {
		return nil, fmt.Errorf("mesh has %d normals for %d vertices", len(normals), len(vertices))
	}
	if len(uvs) > 0 && len(uvs) != len(vertices) {
		return nil, fmt.Errorf("mesh has %d texture coordinates for %d vertices", len(uvs), len(vertices))
	}
	return &Mesh{Vertices: vertices, Indices: indices, Normals: normals, UVs: uvs}, nil
}

// Intersect scans every triangle and keeps the nearest hit.
func (m *Mesh) Intersect(ray Ray) (LocalHit, bool) {
	bestT := math32.Inf(1)
	bestTri := -1
	var bestU, bestV float32

	for i := 0; i+2 < len(m.Indices); i += 3 {
		t, u, v, ok := intersectTriangle(ray,
			m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]])
		if ok && t < bestT {
			bestT, bestU, bestV, bestTri = t, u, v, i
		}
	}
	if bestTri < 0 {
		return LocalHit{}, false
	}

	i0, i1, i2 := m.Indices[bestTri], m.Indices[bestTri+1], m.Indices[bestTri+2]
	hit := LocalHit{
		T:      bestT,
		Normal: m.normalAt(i0, i1, i2, bestU, bestV),
		UV:     mgl32.Vec2{bestU, bestV},
	}
	if len(m.UVs) > 0 {
		w := 1 - bestU - bestV
		hit.UV = m.UVs[i0].Mul(w).Add(m.UVs[i1].Mul(bestU)).Add(m.UVs[i2].Mul(bestV))
	}
	return hit, true
}

// normalAt interpolates the vertex normals at a barycentric coordinate, or
// takes the face normal when the mesh has no vertex normals.
func (m *Mesh) normalAt(i0, i1, i2 int, u, v float32) mgl32.Vec3 {
	if len(m.Normals) > 0 {
		n := m.Normals[i0].Mul(1 - u - v).Add(m.Normals[i1].Mul(u)).Add(m.Normals[i2].Mul(v))
		if n.LenSqr() > 1e-12 {
			return n.Normalize()
		}
	}
	edge1 := m.Vertices[i1].Sub(m.Vertices[i0])
	edge2 := m.Vertices[i2].Sub(m.Vertices[i0])
	return edge1.Cross(edge2).Normalize()
}

// intersectTriangle applies the Möller-Trumbore algorithm, reporting the hit
// distance and its barycentric coordinates (the weights of the second and
// third vertices).
func intersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (t, u, v float32, ok bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math32.Abs(a) < 1e-8 {
		// Ray is parallel to the triangle plane
		return 0, 0, 0, false
	}

	f := 1 / a
	s := ray.Origin.Sub(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)
	if t <= Epsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
