package animation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/geometry"
	"github.com/df07/go-scene-raytracer/pkg/material"
	"github.com/df07/go-scene-raytracer/pkg/renderer"
	"github.com/df07/go-scene-raytracer/pkg/scene"
)

func orbitScene(t *testing.T) *scene.Scene {
	t.Helper()
	shape, err := geometry.NewShape(geometry.Sphere{}, material.Material{Ambient: mgl32.Vec3{1, 0, 0}}, mgl32.Ident4())
	if err != nil {
		t.Fatalf("NewShape failed: %v", err)
	}
	return &scene.Scene{
		Camera: scene.Camera{
			Position:    mgl32.Vec3{0, 1, 5},
			Look:        mgl32.Vec3{0, -1, -5},
			Up:          mgl32.Vec3{0, 1, 0},
			HeightAngle: mgl32.DegToRad(45),
		},
		Coefficients: scene.Coefficients{Ambient: 0.5, Diffuse: 0.5, Specular: 0.5},
		Shapes:       []*geometry.Shape{shape},
	}
}

func smallConfig() renderer.Config {
	cfg := renderer.DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.EnableParallelism = false
	return cfg
}

func TestRenderTurntable(t *testing.T) {
	opts := Options{Frames: 3, FPS: 10, Zoom: 0.5}
	anim, err := RenderTurntable(context.Background(), orbitScene(t), smallConfig(), opts, quietLogger{})
	if err != nil {
		t.Fatalf("RenderTurntable failed: %v", err)
	}

	if len(anim.Image) != 3 || len(anim.Delay) != 3 {
		t.Fatalf("Expected 3 frames and delays, got %d and %d", len(anim.Image), len(anim.Delay))
	}
	if anim.Delay[0] != 10 {
		t.Errorf("Expected 10cs frame delay at 10 fps, got %d", anim.Delay[0])
	}
	if anim.LoopCount != 0 {
		t.Errorf("Expected an endlessly looping GIF, got loop count %d", anim.LoopCount)
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("Expected 4x4 frames, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderTurntable_Errors(t *testing.T) {
	s := orbitScene(t)
	cfg := smallConfig()

	if _, err := RenderTurntable(context.Background(), s, cfg, Options{Frames: 0, FPS: 10, Zoom: 1}, quietLogger{}); err == nil {
		t.Error("Expected error for zero frames, got nil")
	}
	if _, err := RenderTurntable(context.Background(), s, cfg, Options{Frames: 3, FPS: 10, Zoom: 0}, quietLogger{}); err == nil {
		t.Error("Expected error for zero zoom, got nil")
	}

	axis := orbitScene(t)
	axis.Camera.Position = mgl32.Vec3{0, 5, 0}
	if _, err := RenderTurntable(context.Background(), axis, cfg, DefaultOptions(), quietLogger{}); err == nil {
		t.Error("Expected error for a camera on the orbit axis, got nil")
	}
}

func TestRenderTurntable_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RenderTurntable(ctx, orbitScene(t), smallConfig(), DefaultOptions(), quietLogger{}); err == nil {
		t.Error("Expected error for a canceled context, got nil")
	}
}

func TestSaveGIF(t *testing.T) {
	opts := Options{Frames: 2, FPS: 10, Zoom: 1}
	anim, err := RenderTurntable(context.Background(), orbitScene(t), smallConfig(), opts, quietLogger{})
	if err != nil {
		t.Fatalf("RenderTurntable failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "orbit.gif")
	if err := SaveGIF(path, anim); err != nil {
		t.Fatalf("SaveGIF failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected animation file to exist: %v", err)
	}
}
