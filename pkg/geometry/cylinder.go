package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cylinder is the unit cylinder: radius 0.5, height 1, axis along y,
// capped at y = ±0.5.
type Cylinder struct{}

// Intersect finds the nearest intersection with the cylinder body or caps.
func (Cylinder) Intersect(ray Ray) (LocalHit, bool) {
	body, hasBody := cylinderBody(ray)
	cap, hasCap := capHit(ray, 0.5)
	if bottom, ok := capHit(ray, -0.5); ok && (!hasCap || bottom.T < cap.T) {
		cap, hasCap = bottom, true
	}

	switch {
	case hasBody && hasCap:
		if body.T <= cap.T {
			return body, true
		}
		return cap, true
	case hasBody:
		return body, true
	case hasCap:
		return cap, true
	}
	return LocalHit{}, false
}

// cylinderBody intersects the infinite tube x² + z² = 0.25 and clips the
// roots to the cylinder's height.
func cylinderBody(ray Ray) (LocalHit, bool) {
	o, d := ray.Origin, ray.Direction

	a := d.X()*d.X() + d.Z()*d.Z()
	b := 2 * (o.X()*d.X() + o.Z()*d.Z())
	c := o.X()*o.X() + o.Z()*o.Z() - 0.25

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return LocalHit{}, false
	}

	for _, t := range [2]float32{t0, t1} {
		if t <= Epsilon {
			continue
		}
		p := ray.At(t)
		if math32.Abs(p.Y()) > 0.5+Epsilon {
			continue
		}
		normal := mgl32.Vec3{p.X(), 0, p.Z()}.Normalize()
		uv := mgl32.Vec2{azimuthU(p.X(), p.Z()), p.Y() + 0.5}
		return LocalHit{T: t, Normal: normal, UV: uv}, true
	}
	return LocalHit{}, false
}

// capHit intersects a circular end cap of radius 0.5 in the y = elevation
// plane. The cap faces up for positive elevations and down for negative ones.
func capHit(ray Ray, elevation float32) (LocalHit, bool) {
	o, d := ray.Origin, ray.Direction
	if math32.Abs(d.Y()) < 1e-8 {
		return LocalHit{}, false
	}

	t := (elevation - o.Y()) / d.Y()
	if t <= Epsilon {
		return LocalHit{}, false
	}

	p := ray.At(t)
	if p.X()*p.X()+p.Z()*p.Z() > 0.25+Epsilon {
		return LocalHit{}, false
	}

	if elevation > 0 {
		return LocalHit{
			T:      t,
			Normal: mgl32.Vec3{0, 1, 0},
			UV:     mgl32.Vec2{p.X() + 0.5, 0.5 - p.Z()},
		}, true
	}
	return LocalHit{
		T:      t,
		Normal: mgl32.Vec3{0, -1, 0},
		UV:     mgl32.Vec2{p.X() + 0.5, p.Z() + 0.5},
	}, true
}
