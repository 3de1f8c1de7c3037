package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/geometry"
	"github.com/df07/go-scene-raytracer/pkg/lights"
	"github.com/df07/go-scene-raytracer/pkg/material"
	"github.com/df07/go-scene-raytracer/pkg/scene"
	"github.com/df07/go-scene-raytracer/pkg/texture"
)

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// testConfig returns a 1x1 sequential config with every feature enabled.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 1
	cfg.Height = 1
	cfg.EnableParallelism = false
	return cfg
}

// testScene places the camera on the z axis looking at the origin with the
// standard 0.5 global coefficients.
func testScene(shapes []*geometry.Shape, ls []lights.Light) *scene.Scene {
	return &scene.Scene{
		Camera: scene.Camera{
			Position:    mgl32.Vec3{0, 0, 5},
			Look:        mgl32.Vec3{0, 0, -1},
			Up:          mgl32.Vec3{0, 1, 0},
			HeightAngle: mgl32.DegToRad(45),
		},
		Coefficients: scene.Coefficients{Ambient: 0.5, Diffuse: 0.5, Specular: 0.5},
		Lights:       ls,
		Shapes:       shapes,
	}
}

func mustShape(t *testing.T, prim geometry.Primitive, mat material.Material, ctm mgl32.Mat4) *geometry.Shape {
	t.Helper()
	shape, err := geometry.NewShape(prim, mat, ctm)
	if err != nil {
		t.Fatalf("NewShape failed: %v", err)
	}
	return shape
}

func mustRender(t *testing.T, s *scene.Scene, cfg Config) *Framebuffer {
	t.Helper()
	r, err := NewRenderer(s, cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r.Render()
}

func renderPixelColor(t *testing.T, s *scene.Scene, cfg Config) mgl32.Vec3 {
	t.Helper()
	return mustRender(t, s, cfg).At(0, 0)
}

func TestTraceRay_LitSphere(t *testing.T) {
	mat := material.Material{Diffuse: mgl32.Vec3{1, 0, 0}}
	s := testScene(
		[]*geometry.Shape{mustShape(t, geometry.Sphere{}, mat, mgl32.Ident4())},
		[]lights.Light{lights.NewPointLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 10}, lights.NoAttenuation)},
	)

	got := renderPixelColor(t, s, testConfig())
	want := mgl32.Vec3{0.5, 0, 0}
	if !vecEquals(got, want) {
		t.Errorf("Expected %v for a head-on lit sphere, got %v", want, got)
	}
}

func TestTraceRay_MissReturnsBackground(t *testing.T) {
	s := testScene(nil, nil)
	cfg := testConfig()
	cfg.Background = mgl32.Vec3{0.25, 0.5, 0.75}

	got := renderPixelColor(t, s, cfg)
	if !vecEquals(got, cfg.Background) {
		t.Errorf("Expected background color %v, got %v", cfg.Background, got)
	}
}

func TestTraceRay_NearestShapeWins(t *testing.T) {
	red := material.Material{Ambient: mgl32.Vec3{1, 0, 0}}
	blue := material.Material{Ambient: mgl32.Vec3{0, 0, 1}}
	s := testScene([]*geometry.Shape{
		mustShape(t, geometry.Sphere{}, blue, mgl32.Ident4()),
		mustShape(t, geometry.Sphere{}, red, mgl32.Translate3D(0, 0, 2)),
	}, nil)

	got := renderPixelColor(t, s, testConfig())
	if !vecEquals(got, mgl32.Vec3{0.5, 0, 0}) {
		t.Errorf("Expected the closer sphere's color, got %v", got)
	}
}

func TestTraceRay_SpecularHighlight(t *testing.T) {
	mat := material.Material{
		Diffuse:   mgl32.Vec3{1, 0, 0},
		Specular:  mgl32.Vec3{0, 1, 0},
		Shininess: 25,
	}
	s := testScene(
		[]*geometry.Shape{mustShape(t, geometry.Sphere{}, mat, mgl32.Ident4())},
		[]lights.Light{lights.NewPointLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 10}, lights.NoAttenuation)},
	)

	// Head on, the mirror direction lines up exactly with the camera, so the
	// specular lobe contributes its full strength regardless of shininess.
	got := renderPixelColor(t, s, testConfig())
	if !vecEquals(got, mgl32.Vec3{0.5, 0.5, 0}) {
		t.Errorf("Expected full diffuse and specular at mirror alignment, got %v", got)
	}
}

func TestTraceRay_ShadowToggle(t *testing.T) {
	mat := material.Material{Diffuse: mgl32.Vec3{1, 0, 0}, Ambient: mgl32.Vec3{0.2, 0.2, 0.2}}
	shapes := []*geometry.Shape{
		mustShape(t, geometry.Sphere{}, mat, mgl32.Ident4()),
		mustShape(t, geometry.Sphere{}, mat, mgl32.Translate3D(1.5, 0, 1.8)),
	}
	ls := []lights.Light{lights.NewPointLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{3, 0, 3}, lights.NoAttenuation)}
	s := testScene(shapes, ls)

	cfg := testConfig()
	shadowed := renderPixelColor(t, s, cfg)

	cfg.EnableShadows = false
	unshadowed := renderPixelColor(t, s, cfg)

	if !vecEquals(shadowed, mgl32.Vec3{0.1, 0.1, 0.1}) {
		t.Errorf("Expected ambient-only shading in shadow, got %v", shadowed)
	}
	if unshadowed.X() <= shadowed.X() {
		t.Errorf("Expected direct light to brighten the pixel, got %v vs %v", unshadowed, shadowed)
	}
}

func TestTraceRay_ReflectionDepth(t *testing.T) {
	mirror := material.Material{
		Ambient:    mgl32.Vec3{1, 0, 0},
		Reflective: mgl32.Vec3{0.9, 0.9, 0.9},
	}
	walls := []*geometry.Shape{
		mustShape(t, geometry.Cube{}, mirror, mgl32.Translate3D(3, 0, 0).Mul4(mgl32.Scale3D(1, 4, 4))),
		mustShape(t, geometry.Cube{}, mirror, mgl32.Translate3D(-3, 0, 0).Mul4(mgl32.Scale3D(1, 4, 4))),
	}
	s := testScene(walls, nil)
	s.Camera.Position = mgl32.Vec3{0, 0, 0}
	s.Camera.Look = mgl32.Vec3{1, 0, 0}

	cfg := testConfig()
	r, err := NewRenderer(s, cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	lit := r.Render().At(0, 0)

	// Between two facing mirrors the ray keeps bouncing until the depth
	// limit cuts it off.
	if got := r.Stats().Reflection.Load(); got != int64(cfg.MaxRecursionDepth) {
		t.Errorf("Expected %d reflection rays between facing mirrors, got %d", cfg.MaxRecursionDepth, got)
	}

	cfg.EnableReflections = false
	flat := renderPixelColor(t, s, cfg)
	if !vecEquals(flat, mgl32.Vec3{0.5, 0, 0}) {
		t.Errorf("Expected ambient-only shading without reflections, got %v", flat)
	}
	if lit.X() <= flat.X() {
		t.Errorf("Expected reflections to add light, got %v vs %v", lit, flat)
	}

	cfg.EnableReflections = true
	cfg.MaxRecursionDepth = 0
	if got := renderPixelColor(t, s, cfg); !vecEquals(got, flat) {
		t.Errorf("Expected zero depth to disable bounces, got %v", got)
	}
}

func TestRaytracer_DiffuseColorBlend(t *testing.T) {
	green := &texture.Texture{Width: 1, Height: 1, Pixels: []mgl32.Vec3{{0, 1, 0}}}
	mat := material.Material{
		Diffuse: mgl32.Vec3{1, 0, 0},
		Texture: &material.TextureRef{Image: green, RepeatU: 1, RepeatV: 1, Blend: 0.5},
	}
	hit := geometry.HitRecord{UV: mgl32.Vec2{0.25, 0.75}, Material: &mat}

	cfg := testConfig()
	rt := NewRaytracer(testScene(nil, nil), cfg, &RayStats{})
	if got, want := rt.diffuseColor(hit), (mgl32.Vec3{0.25, 0.5, 0}); !vecEquals(got, want) {
		t.Errorf("Expected blended diffuse %v, got %v", want, got)
	}

	cfg.EnableTexture = false
	rt = NewRaytracer(testScene(nil, nil), cfg, &RayStats{})
	if got, want := rt.diffuseColor(hit), (mgl32.Vec3{0.5, 0, 0}); !vecEquals(got, want) {
		t.Errorf("Expected plain diffuse with texturing disabled, got %v (want %v)", got, want)
	}
}
