package lights

import "github.com/go-gl/mathgl/mgl32"

// PointLight radiates equally in all directions from a single position.
type PointLight struct {
	Color       mgl32.Vec3
	Position    mgl32.Vec3
	Attenuation Attenuation
}

// NewPointLight creates a point light at the given position.
func NewPointLight(color, position mgl32.Vec3, attenuation Attenuation) *PointLight {
	return &PointLight{Color: color, Position: position, Attenuation: attenuation}
}

func (l *PointLight) DirectionTo(point mgl32.Vec3) mgl32.Vec3 {
	return point.Sub(l.Position).Normalize()
}

func (l *PointLight) DistanceTo(point mgl32.Vec3) float32 {
	return point.Sub(l.Position).Len()
}

func (l *PointLight) IntensityAt(point mgl32.Vec3) mgl32.Vec3 {
	return l.Color.Mul(l.Attenuation.Factor(l.DistanceTo(point)))
}
