package lights

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SpotLight is a point light restricted to a cone, with a smooth penumbra
// between full intensity and darkness.
type SpotLight struct {
	Color       mgl32.Vec3
	Position    mgl32.Vec3
	Direction   mgl32.Vec3 // unit vector, axis of the cone
	Attenuation Attenuation
	Angle       float32 // half-angle of the outer cone, in radians
	Penumbra    float32 // width of the falloff band inside the outer cone, in radians
}

// NewSpotLight creates a spot light aimed along direction.
func NewSpotLight(color, position, direction mgl32.Vec3, attenuation Attenuation, angle, penumbra float32) (*SpotLight, error) {
	if direction.LenSqr() < 1e-12 {
		return nil, fmt.Errorf("spot light direction must be non-zero")
	}
	return &SpotLight{
		Color:       color,
		Position:    position,
		Direction:   direction.Normalize(),
		Attenuation: attenuation,
		Angle:       angle,
		Penumbra:    penumbra,
	}, nil
}

func (l *SpotLight) DirectionTo(point mgl32.Vec3) mgl32.Vec3 {
	return point.Sub(l.Position).Normalize()
}

func (l *SpotLight) DistanceTo(point mgl32.Vec3) float32 {
	return point.Sub(l.Position).Len()
}

func (l *SpotLight) IntensityAt(point mgl32.Vec3) mgl32.Vec3 {
	return l.Color.Mul(l.Attenuation.Factor(l.DistanceTo(point)) * l.falloff(point))
}

// falloff returns 1 inside the inner cone, 0 outside the outer cone, and a
// smooth hermite blend across the penumbra band.
func (l *SpotLight) falloff(point mgl32.Vec3) float32 {
	inner := l.Angle - l.Penumbra
	cosTheta := mgl32.Clamp(l.Direction.Dot(l.DirectionTo(point)), -1, 1)
	theta := math32.Acos(cosTheta)

	switch {
	case theta <= inner:
		return 1
	case theta > l.Angle:
		return 0
	default:
		x := (theta - inner) / l.Penumbra
		return 1 - (-2*x*x*x + 3*x*x)
	}
}
