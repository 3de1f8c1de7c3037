package lights

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLight illuminates every point from the same direction, like a
// source infinitely far away.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Direction mgl32.Vec3 // unit vector, direction the light travels
}

// NewDirectionalLight creates a directional light traveling along direction.
func NewDirectionalLight(color, direction mgl32.Vec3) (*DirectionalLight, error) {
	if direction.LenSqr() < 1e-12 {
		return nil, fmt.Errorf("directional light direction must be non-zero")
	}
	return &DirectionalLight{Color: color, Direction: direction.Normalize()}, nil
}

func (l *DirectionalLight) DirectionTo(point mgl32.Vec3) mgl32.Vec3 {
	return l.Direction
}

// DistanceTo returns +Inf: any intersection along the shadow ray occludes a
// directional light.
func (l *DirectionalLight) DistanceTo(point mgl32.Vec3) float32 {
	return math32.Inf(1)
}

func (l *DirectionalLight) IntensityAt(point mgl32.Vec3) mgl32.Vec3 {
	return l.Color
}
