// Package animation renders camera orbits of a scene into animated GIFs.
package animation

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/renderer"
	"github.com/df07/go-scene-raytracer/pkg/scene"
)

// Options controls a turntable animation.
type Options struct {
	Frames int     // frames in one full orbit
	FPS    int     // playback rate of the GIF
	Zoom   float32 // dolly factor the camera settles toward, 1 keeps the start distance
}

// DefaultOptions returns a three second orbit with a gentle dolly-in.
func DefaultOptions() Options {
	return Options{Frames: 60, FPS: 20, Zoom: 0.75}
}

// quietLogger suppresses the per-frame render output.
type quietLogger struct{}

func (quietLogger) Printf(string, ...interface{}) {}

// RenderTurntable renders one full orbit of the camera around the scene's
// vertical axis and assembles the frames into a looping GIF. The camera keeps
// its height, aims at the origin, and dollies toward the zoom distance on a
// critically damped spring.
func RenderTurntable(ctx context.Context, s *scene.Scene, cfg renderer.Config, opts Options, logger renderer.Logger) (*gif.GIF, error) {
	if opts.Frames < 1 {
		return nil, fmt.Errorf("frame count must be at least 1, got %d", opts.Frames)
	}
	if opts.FPS < 1 {
		return nil, fmt.Errorf("fps must be at least 1, got %d", opts.FPS)
	}
	if opts.Zoom <= 0 {
		return nil, fmt.Errorf("zoom factor must be positive, got %v", opts.Zoom)
	}
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}

	base := s.Camera.Position
	radius := math32.Sqrt(base.X()*base.X() + base.Z()*base.Z())
	if radius < 1e-4 {
		return nil, fmt.Errorf("camera sits on the orbit axis and cannot turn around it")
	}
	startAngle := math32.Atan2(base.Z(), base.X())

	spring := harmonica.NewSpring(harmonica.FPS(opts.FPS), 4.0, 1.0)
	dolly := float64(radius)
	velocity := 0.0
	target := float64(radius * opts.Zoom)

	delay := 100 / opts.FPS // in 1/100ths of a second
	anim := &gif.GIF{LoopCount: 0}

	for frame := 0; frame < opts.Frames; frame++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		angle := startAngle + 2*math32.Pi*float32(frame)/float32(opts.Frames)
		position := mgl32.Vec3{
			float32(dolly) * math32.Cos(angle),
			base.Y(),
			float32(dolly) * math32.Sin(angle),
		}

		orbit := *s
		orbit.Camera.Position = position
		orbit.Camera.Look = position.Mul(-1)
		orbit.Camera.Up = mgl32.Vec3{0, 1, 0}

		r, err := renderer.NewRenderer(&orbit, cfg, quietLogger{})
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", frame, err)
		}
		fb := r.Render()

		anim.Image = append(anim.Image, palettedFrame(fb))
		anim.Delay = append(anim.Delay, delay)
		logger.Printf("Rendered frame %d/%d\n", frame+1, opts.Frames)

		dolly, velocity = spring.Update(dolly, velocity, target)
	}

	return anim, nil
}

// palettedFrame quantizes a framebuffer onto the Plan9 palette with error
// diffusion, the format GIF frames require.
func palettedFrame(fb *renderer.Framebuffer) *image.Paletted {
	src := fb.ToRGBA()
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, src.Bounds(), src, image.Point{})
	return dst
}

// SaveGIF writes the animation to a file.
func SaveGIF(path string, anim *gif.GIF) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create animation file: %w", err)
	}
	defer file.Close()

	if err := gif.EncodeAll(file, anim); err != nil {
		return fmt.Errorf("failed to encode animation: %w", err)
	}
	return nil
}
