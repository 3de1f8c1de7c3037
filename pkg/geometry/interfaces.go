package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LocalHit describes an intersection in a primitive's own object space.
type LocalHit struct {
	T      float32
	Normal mgl32.Vec3 // unit length, object space
	UV     mgl32.Vec2
}

// Primitive is a canonical unit shape defined in object space. Shapes place
// primitives in the scene by transforming rays into this space.
type Primitive interface {
	// Intersect returns the nearest hit with t > Epsilon, if any. The ray
	// must already be expressed in the primitive's object space.
	Intersect(ray Ray) (LocalHit, bool)
}
