package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the minimum parametric distance accepted for an intersection.
// Hits closer than this are treated as self-intersection noise and rejected.
const Epsilon = 1e-4

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point along the ray at parameter t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transformed returns the ray mapped through the given matrix. The direction
// is not renormalized, so t values measure the same distance in both spaces.
func (r Ray) Transformed(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// Reflect mirrors the vector v about the axis n.
func Reflect(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
