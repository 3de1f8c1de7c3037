// Package lights implements the light sources used for direct Phong
// illumination: point, directional and spot lights with distance attenuation.
package lights

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Light is a source of illumination for direct lighting.
type Light interface {
	// DirectionTo returns the unit vector pointing from the light toward the point.
	DirectionTo(point mgl32.Vec3) mgl32.Vec3

	// DistanceTo returns the distance from the light to the point.
	// Directional lights return +Inf so that any occluder blocks them.
	DistanceTo(point mgl32.Vec3) float32

	// IntensityAt returns the light color after attenuation and falloff at the point.
	IntensityAt(point mgl32.Vec3) mgl32.Vec3
}

// Attenuation holds the coefficients of the distance falloff function.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// NoAttenuation keeps full intensity at every distance.
var NoAttenuation = Attenuation{Constant: 1}

// Factor returns the intensity multiplier 1/(c + l*d + q*d²) at the given
// distance, clamped to at most 1.
func (a Attenuation) Factor(distance float32) float32 {
	return math32.Min(1, 1/(a.Constant+a.Linear*distance+a.Quadratic*distance*distance))
}
