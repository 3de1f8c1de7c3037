package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Cone is the unit cone: base radius 0.5 at y = -0.5, apex at (0, 0.5, 0).
type Cone struct{}

// Intersect finds the nearest intersection with the cone body or base cap.
func (Cone) Intersect(ray Ray) (LocalHit, bool) {
	body, hasBody := coneBody(ray)
	base, hasBase := capHit(ray, -0.5)

	switch {
	case hasBody && hasBase:
		if body.T <= base.T {
			return body, true
		}
		return base, true
	case hasBody:
		return body, true
	case hasBase:
		return base, true
	}
	return LocalHit{}, false
}

// coneBody intersects the slanted surface x² + z² = (0.5 - y)²/4 and clips
// the roots to the cone's height, discarding the mirror cone above the apex.
func coneBody(ray Ray) (LocalHit, bool) {
	o, d := ray.Origin, ray.Direction
	w := 0.5 - o.Y()

	a := d.X()*d.X() + d.Z()*d.Z() - d.Y()*d.Y()/4
	b := 2*(o.X()*d.X()+o.Z()*d.Z()) + w*d.Y()/2
	c := o.X()*o.X() + o.Z()*o.Z() - w*w/4

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return LocalHit{}, false
	}

	for _, t := range [2]float32{t0, t1} {
		if t <= Epsilon {
			continue
		}
		p := ray.At(t)
		if p.Y() < -0.5-Epsilon || p.Y() > 0.5+Epsilon {
			continue
		}
		uv := mgl32.Vec2{azimuthU(p.X(), p.Z()), p.Y() + 0.5}
		return LocalHit{T: t, Normal: coneNormal(p), UV: uv}, true
	}
	return LocalHit{}, false
}

// coneNormal returns the outward surface normal on the cone body.
func coneNormal(p mgl32.Vec3) mgl32.Vec3 {
	n := mgl32.Vec3{p.X(), (0.5 - p.Y()) / 4, p.Z()}
	if n.LenSqr() < 1e-12 {
		// Degenerate at the apex itself
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
