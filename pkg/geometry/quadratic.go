package geometry

import (
	"github.com/chewxy/math32"
)

// solveQuadratic returns the real roots of a*t² + b*t + c = 0 in ascending
// order. Tangential touches (zero discriminant) are not reported. Near-linear
// equations fall back to the single linear root, which covers rays running
// exactly parallel to a cone's slope.
func solveQuadratic(a, b, c float32) (float32, float32, bool) {
	if math32.Abs(a) < 1e-8 {
		if math32.Abs(b) < 1e-8 {
			return 0, 0, false
		}
		t := -c / b
		return t, t, true
	}

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return 0, 0, false
	}

	root := math32.Sqrt(discriminant)
	t0 := (-b - root) / (2 * a)
	t1 := (-b + root) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
