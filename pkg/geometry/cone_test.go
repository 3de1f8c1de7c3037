package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestCone_Intersect_Body(t *testing.T) {
	// At y=0 the cone's radius is 0.25
	ray := NewRay(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{-1, 0, 0})

	hit, ok := Cone{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.T, 1.75) {
		t.Errorf("Expected t=1.75, got t=%f", hit.T)
	}

	// The body normal tilts upward away from the surface
	expected := mgl32.Vec3{1, 0.5, 0}.Normalize()
	if !vecEquals(hit.Normal, expected) {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
}

func TestCone_Intersect_BaseCap(t *testing.T) {
	ray := NewRay(mgl32.Vec3{0.1, -2, 0}, mgl32.Vec3{0, 1, 0})

	hit, ok := Cone{}.Intersect(ray)
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

func TestCone_Intersect_MirrorConeRejected(t *testing.T) {
	// The quadratic surface continues above the apex; hits there must not count
	ray := NewRay(mgl32.Vec3{2, 1.5, 0}, mgl32.Vec3{-1, 0, 0})

	if hit, ok := (Cone{}).Intersect(ray); ok {
		t.Errorf("Expected miss above the apex, but got hit at t=%f", hit.T)
	}
}

func TestCone_Intersect_Miss(t *testing.T) {
	ray := NewRay(mgl32.Vec3{2, 0, 2}, mgl32.Vec3{0, 1, 0})

	if hit, ok := (Cone{}).Intersect(ray); ok {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestCone_Intersect_SlopeParallelRay(t *testing.T) {
	// A ray running parallel to the cone's slope degenerates the quadratic
	// to a linear equation but still crosses the far surface once.
	ray := NewRay(mgl32.Vec3{1, 0.95, 0}, mgl32.Vec3{-0.5, -1, 0})

	hit, ok := Cone{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected the slope-parallel ray to hit, but got miss")
	}
	if math32.IsInf(hit.T, 0) || !floatEquals(hit.T, 1.225) {
		t.Errorf("Expected t=1.225, got t=%f", hit.T)
	}
}

func TestCone_UV_Body(t *testing.T) {
	// Front of the body at y=0, where the radius is 0.25
	ray := NewRay(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, -1})

	hit, ok := Cone{}.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !floatEquals(hit.UV.X(), 0.25) || !floatEquals(hit.UV.Y(), 0.5) {
		t.Errorf("Expected UV (0.25, 0.5), got (%f, %f)", hit.UV.X(), hit.UV.Y())
	}
}
