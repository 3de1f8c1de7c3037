package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is the unit sphere: radius 0.5, centered at the origin.
type Sphere struct{}

// Intersect finds the nearest intersection with the unit sphere.
func (Sphere) Intersect(ray Ray) (LocalHit, bool) {
	o, d := ray.Origin, ray.Direction

	// Quadratic equation coefficients: at² + bt + c = 0
	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - 0.25

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return LocalHit{}, false
	}

	// Try the closer intersection point first
	for _, t := range [2]float32{t0, t1} {
		if t > Epsilon {
			p := ray.At(t)
			return LocalHit{T: t, Normal: p.Normalize(), UV: sphereUV(p)}, true
		}
	}
	return LocalHit{}, false
}

// sphereUV maps a point on the unit sphere to latitude/longitude texture
// coordinates. Points on the poles map to u = 0.5.
func sphereUV(p mgl32.Vec3) mgl32.Vec2 {
	v := 0.5 + math32.Asin(mgl32.Clamp(2*p.Y(), -1, 1))/math32.Pi
	return mgl32.Vec2{azimuthU(p.X(), p.Z()), v}
}

// azimuthU maps the angle around the y axis to a u coordinate in [0, 1).
func azimuthU(x, z float32) float32 {
	if x*x+z*z < 1e-12 {
		return 0.5
	}
	u := 0.5 - math32.Atan2(z, x)/(2*math32.Pi)
	if u >= 1 {
		u -= 1
	}
	return u
}
