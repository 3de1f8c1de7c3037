package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube is the axis-aligned unit cube: side length 1, centered at the origin.
type Cube struct{}

// Intersect tests the ray against all six face planes and keeps the nearest
// hit that lies within its face.
func (Cube) Intersect(ray Ray) (LocalHit, bool) {
	const half = 0.5

	best := LocalHit{T: math32.Inf(1)}
	found := false

	for axis := 0; axis < 3; axis++ {
		if math32.Abs(ray.Direction[axis]) < 1e-8 {
			continue
		}
		for _, side := range [2]float32{half, -half} {
			t := (side - ray.Origin[axis]) / ray.Direction[axis]
			if t <= Epsilon || t >= best.T {
				continue
			}

			// The hit must land inside the face, not just on its plane
			p := ray.At(t)
			u, v := (axis+1)%3, (axis+2)%3
			if math32.Abs(p[u]) > half+Epsilon || math32.Abs(p[v]) > half+Epsilon {
				continue
			}

			var normal mgl32.Vec3
			if side > 0 {
				normal[axis] = 1
			} else {
				normal[axis] = -1
			}
			best = LocalHit{T: t, Normal: normal, UV: cubeUV(axis, side > 0, p)}
			found = true
		}
	}
	return best, found
}

// cubeUV maps a point on a cube face to texture coordinates, oriented so that
// textures read upright when each face is viewed head-on from outside.
func cubeUV(axis int, positive bool, p mgl32.Vec3) mgl32.Vec2 {
	switch {
	case axis == 0 && positive:
		return mgl32.Vec2{0.5 - p.Z(), p.Y() + 0.5}
	case axis == 0:
		return mgl32.Vec2{p.Z() + 0.5, p.Y() + 0.5}
	case axis == 1 && positive:
		return mgl32.Vec2{p.X() + 0.5, 0.5 - p.Z()}
	case axis == 1:
		return mgl32.Vec2{p.X() + 0.5, p.Z() + 0.5}
	case axis == 2 && positive:
		return mgl32.Vec2{p.X() + 0.5, p.Y() + 0.5}
	default:
		return mgl32.Vec2{0.5 - p.X(), p.Y() + 0.5}
	}
}
