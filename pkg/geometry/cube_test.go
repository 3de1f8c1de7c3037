package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCube_Intersect_FaceNormals(t *testing.T) {
	tests := []struct {
		name           string
		origin         mgl32.Vec3
		direction      mgl32.Vec3
		expectedT      float32
		expectedNormal mgl32.Vec3
	}{
		{"positive x", mgl32.Vec3{2, 0, 0}, mgl32.Vec3{-1, 0, 0}, 1.5, mgl32.Vec3{1, 0, 0}},
		{"negative x", mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{1, 0, 0}, 1.5, mgl32.Vec3{-1, 0, 0}},
		{"positive y", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -1, 0}, 1.5, mgl32.Vec3{0, 1, 0}},
		{"negative y", mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, 1, 0}, 1.5, mgl32.Vec3{0, -1, 0}},
		{"positive z", mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, -1}, 1.5, mgl32.Vec3{0, 0, 1}},
		{"negative z", mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}, 1.5, mgl32.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := Cube{}.Intersect(NewRay(tt.origin, tt.direction))
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if !floatEquals(hit.T, tt.expectedT) {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !vecEquals(hit.Normal, tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestCube_Intersect_Miss(t *testing.T) {
	// Ray passes beside the cube
	ray := NewRay(mgl32.Vec3{2, 2, 0}, mgl32.Vec3{-1, 0, 0})

	if hit, ok := (Cube{}).Intersect(ray); ok {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestCube_Intersect_AxisParallelRay(t *testing.T) {
	// Direction has zero components; those axes must not divide by zero
	ray := NewRay(mgl32.Vec3{0.25, 0.25, 5}, mgl32.Vec3{0, 0, -1})

	hit, ok := Cube{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.T, 4.5) {
		t.Errorf("Expected t=4.5, got t=%f", hit.T)
	}
}

func TestCube_Intersect_FromInside(t *testing.T) {
	ray := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})

	hit, ok := Cube{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit from inside the cube, but got miss")
	}
	if !floatEquals(hit.T, 0.5) {
		t.Errorf("Expected t=0.5, got t=%f", hit.T)
	}
	// The normal points outward even though the ray exits through the face
	if !vecEquals(hit.Normal, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestCube_UV(t *testing.T) {
	tests := []struct {
		name      string
		origin    mgl32.Vec3
		direction mgl32.Vec3
		expectedU float32
		expectedV float32
	}{
		// Hitting the +z face off-center: u tracks x, v tracks y
		{"front face upper right", mgl32.Vec3{0.25, 0.25, 2}, mgl32.Vec3{0, 0, -1}, 0.75, 0.75},
		{"front face lower left", mgl32.Vec3{-0.25, -0.25, 2}, mgl32.Vec3{0, 0, -1}, 0.25, 0.25},
		// +y face reads with z increasing downward
		{"top face", mgl32.Vec3{0.25, 2, -0.25}, mgl32.Vec3{0, -1, 0}, 0.75, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := Cube{}.Intersect(NewRay(tt.origin, tt.direction))
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if !floatEquals(hit.UV.X(), tt.expectedU) || !floatEquals(hit.UV.Y(), tt.expectedV) {
				t.Errorf("Expected UV (%f, %f), got (%f, %f)", tt.expectedU, tt.expectedV, hit.UV.X(), hit.UV.Y())
			}
		})
	}
}
