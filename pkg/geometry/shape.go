package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/material"
)

// HitRecord contains information about a ray-shape intersection in world space.
type HitRecord struct {
	T        float32    // Parameter t along the ray
	Point    mgl32.Vec3 // Point of intersection
	Normal   mgl32.Vec3 // Surface normal at intersection, unit length
	UV       mgl32.Vec2 // Surface parameterization at the hit
	Material *material.Material
}

// Shape is a primitive instance placed in the scene by a cumulative
// transformation matrix, together with the material used to shade it.
type Shape struct {
	Primitive Primitive
	Material  material.Material

	ctm          mgl32.Mat4
	worldToLocal mgl32.Mat4
	normalMatrix mgl32.Mat3
}

// NewShape creates a shape from a primitive, material and cumulative
// transform. The world-to-object and normal matrices are computed once here;
// intersection never inverts a matrix per ray.
func NewShape(primitive Primitive, mat material.Material, ctm mgl32.Mat4) (*Shape, error) {
	if primitive == nil {
		return nil, fmt.Errorf("shape primitive must not be nil")
	}
	if ctm.Det() == 0 {
		return nil, fmt.Errorf("shape transform is singular and cannot be inverted")
	}
	return &Shape{
		Primitive:    primitive,
		Material:     mat,
		ctm:          ctm,
		worldToLocal: ctm.Inv(),
		normalMatrix: ctm.Mat3().Transpose().Inv(),
	}, nil
}

// Transform returns the shape's cumulative transformation matrix.
func (s *Shape) Transform() mgl32.Mat4 {
	return s.ctm
}

// Intersect tests a world-space ray against the shape. The object-space ray
// direction is not renormalized, so the primitive's t value is valid along
// the world ray as well.
func (s *Shape) Intersect(ray Ray) (HitRecord, bool) {
	local, ok := s.Primitive.Intersect(ray.Transformed(s.worldToLocal))
	if !ok {
		return HitRecord{}, false
	}

	return HitRecord{
		T:        local.T,
		Point:    ray.At(local.T),
		Normal:   s.normalMatrix.Mul3x1(local.Normal).Normalize(),
		UV:       local.UV,
		Material: &s.Material,
	}, true
}
