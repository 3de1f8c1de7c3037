package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera describes the viewer: position, orientation and vertical field of view.
type Camera struct {
	Position    mgl32.Vec3
	Look        mgl32.Vec3
	Up          mgl32.Vec3
	HeightAngle float32 // radians
}

// Validate reports whether the camera defines a usable view basis.
func (c Camera) Validate() error {
	if c.Look.LenSqr() < 1e-12 {
		return fmt.Errorf("camera look direction must be non-zero")
	}
	if c.Up.LenSqr() < 1e-12 {
		return fmt.Errorf("camera up vector must be non-zero")
	}
	if c.Look.Cross(c.Up).LenSqr() < 1e-12 {
		return fmt.Errorf("camera up vector cannot be parallel to the look direction")
	}
	if c.HeightAngle <= 0 || c.HeightAngle >= math32.Pi {
		return fmt.Errorf("camera height angle must be between 0 and 180 degrees")
	}
	return nil
}
