package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCylinder_Intersect_Body(t *testing.T) {
	ray := NewRay(mgl32.Vec3{2, 0.25, 0}, mgl32.Vec3{-1, 0, 0})

	hit, ok := Cylinder{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.T, 1.5) {
		t.Errorf("Expected t=1.5, got t=%f", hit.T)
	}
	// Body normals are radial, with no vertical component
	if !vecEquals(hit.Normal, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected normal (1,0,0), got %v", hit.Normal)
	}
}

func TestCylinder_Intersect_TopCap(t *testing.T) {
	ray := NewRay(mgl32.Vec3{0.1, 2, 0.1}, mgl32.Vec3{0, -1, 0})

	hit, ok := Cylinder{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.T, 1.5) {
		t.Errorf("Expected t=1.5, got t=%f", hit.T)
	}
	if !vecEquals(hit.Normal, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}
}

func TestCylinder_Intersect_BottomCap(t *testing.T) {
	ray := NewRay(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, 1, 0})

	hit, ok := Cylinder{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.T, 1.5) {
		t.Errorf("Expected t=1.5, got t=%f", hit.T)
	}
	if !vecEquals(hit.Normal, mgl32.Vec3{0, -1, 0}) {
		t.Errorf("Expected normal (0,-1,0), got %v", hit.Normal)
	}
}

func TestCylinder_Intersect_MissAboveBody(t *testing.T) {
	// The infinite tube would be hit, but the cylinder is clipped at y=0.5
	ray := NewRay(mgl32.Vec3{2, 1, 0}, mgl32.Vec3{-1, 0, 0})

	if hit, ok := (Cylinder{}).Intersect(ray); ok {
		t.Errorf("Expected miss above the cylinder, but got hit at t=%f", hit.T)
	}
}

func TestCylinder_Intersect_CapBeforeBody(t *testing.T) {
	// A slanted ray from above strikes the top cap; the tube intersection
	// falls outside the clipped height
	ray := NewRay(mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{0.2, -1, 0})

	hit, ok := Cylinder{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.T, 1) {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if !vecEquals(hit.Normal, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected the top cap normal (0,1,0), got %v", hit.Normal)
	}
}

func TestCylinder_UV_Body(t *testing.T) {
	// Hit the front of the body halfway up
	ray := NewRay(mgl32.Vec3{0, 0.25, 2}, mgl32.Vec3{0, 0, -1})

	hit, ok := Cylinder{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.UV.X(), 0.25) || !floatEquals(hit.UV.Y(), 0.75) {
		t.Errorf("Expected UV (0.25, 0.75), got (%f, %f)", hit.UV.X(), hit.UV.Y())
	}
}
