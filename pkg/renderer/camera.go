package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/geometry"
	"github.com/df07/go-scene-raytracer/pkg/scene"
)

// Camera generates world-space rays for image pixels. The view plane sits at
// unit distance along the look direction and is sized from the vertical
// field of view and the image aspect ratio.
type Camera struct {
	eye           mgl32.Vec3
	cameraToWorld mgl32.Mat4
	planeWidth    float32
	planeHeight   float32
	width         int
	height        int
}

// NewCamera builds a camera for an image of the given dimensions.
func NewCamera(spec scene.Camera, width, height int) (*Camera, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}

	planeHeight := 2 * math32.Tan(spec.HeightAngle/2)
	planeWidth := planeHeight * float32(width) / float32(height)

	// LookAtV maps world to camera space; rays need the inverse.
	target := spec.Position.Add(spec.Look)
	cameraToWorld := mgl32.LookAtV(spec.Position, target, spec.Up).Inv()

	return &Camera{
		eye:           spec.Position,
		cameraToWorld: cameraToWorld,
		planeWidth:    planeWidth,
		planeHeight:   planeHeight,
		width:         width,
		height:        height,
	}, nil
}

// GetRay returns the world-space ray through pixel (px, py) at sub-pixel
// offset (jx, jy) in [0, 1). Pixel y grows downward, camera y grows upward.
func (c *Camera) GetRay(px, py int, jx, jy float32) geometry.Ray {
	x := (float32(px)+jx)/float32(c.width) - 0.5
	y := 0.5 - (float32(py)+jy)/float32(c.height)

	local := mgl32.Vec3{x * c.planeWidth, y * c.planeHeight, -1}.Normalize()

	// The camera-to-world transform is rigid, so the direction stays unit.
	direction := c.cameraToWorld.Mul4x1(local.Vec4(0)).Vec3()

	return geometry.Ray{Origin: c.eye, Direction: direction}
}
